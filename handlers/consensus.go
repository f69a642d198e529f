package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hughdickinson/DCWConsensus/consensus"
	"github.com/hughdickinson/DCWConsensus/database"
)

type consensusResponse struct {
	Status consensus.Outcome `json:"status"`
	*consensus.Result
}

type textResponse struct {
	Status consensus.Outcome `json:"status"`
	*consensus.ConsensusText
}

// GetConsensus returns the full consensus record of a subject.
func (h *Handler) GetConsensus(c *gin.Context) {
	id, ok := subjectID(c)
	if !ok {
		return
	}

	var result *consensus.Result
	err := database.WithConnection(c.Request.Context(), h.db, func(store *database.Store) error {
		var err error
		result, err = consensus.NewAssembler(store, id, h.opts, h.logger).AllResults(c.Request.Context())
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, consensusResponse{Status: result.Outcome(), Result: result})
}

// GetConsensusText returns the flat best-guess text of a subject.
func (h *Handler) GetConsensusText(c *gin.Context) {
	id, ok := subjectID(c)
	if !ok {
		return
	}

	var text *consensus.ConsensusText
	err := database.WithConnection(c.Request.Context(), h.db, func(store *database.Store) error {
		var err error
		text, err = consensus.NewAssembler(store, id, h.opts, h.logger).ConsensusText(c.Request.Context())
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, textResponse{Status: text.Outcome(), ConsensusText: text})
}
