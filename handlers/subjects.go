package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hughdickinson/DCWConsensus/consensus"
	"github.com/hughdickinson/DCWConsensus/database"
)

const maxSubjectLimit = 500

// GetSubjects lists stored subjects.
func (h *Handler) GetSubjects(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": consensus.OutcomeFailed, "error": "Invalid limit"})
		return
	}
	if limit == 0 || limit > maxSubjectLimit {
		limit = maxSubjectLimit
	}
	minReliability, err := strconv.ParseFloat(c.DefaultQuery("min_reliability", "0"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": consensus.OutcomeFailed, "error": "Invalid min_reliability"})
		return
	}

	filter := database.SubjectFilter{
		Limit:          limit,
		MinReliability: minReliability,
		HuntingtonID:   c.Query("huntington_id"),
	}
	subjects, err := database.NewStore(h.db).ListSubjects(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}

// GetRandomSubject picks a subject for review.
func (h *Handler) GetRandomSubject(c *gin.Context) {
	id, err := database.NewStore(h.db).RandomSubjectID(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjectId": id})
}

// GetStats summarises the stored corpus.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := database.NewStore(h.db).Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
