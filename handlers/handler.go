package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hughdickinson/DCWConsensus/config"
	"github.com/hughdickinson/DCWConsensus/consensus"
)

// Handler serves consensus data from one database.
type Handler struct {
	db     *gorm.DB
	opts   consensus.Options
	logger *zap.Logger
}

// New builds a Handler from the matching and text settings in cfg.
func New(db *gorm.DB, cfg *config.Config, logger *zap.Logger) (*Handler, error) {
	coverage, err := consensus.CoverageByName(cfg.Matching.Coverage, cfg.Matching.Threshold)
	if err != nil {
		return nil, err
	}
	return &Handler{
		db: db,
		opts: consensus.Options{
			Coverage:      coverage,
			WordSeparator: cfg.Text.WordSeparator,
			LineBreak:     cfg.Text.LineBreak,
		},
		logger: logger,
	}, nil
}

// NewRouter registers all routes on a fresh gin engine.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(h.logger), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/stats", h.GetStats)
		api.GET("/subjects", h.GetSubjects)
		api.GET("/subjects/random", h.GetRandomSubject)
		api.GET("/subjects/:id/consensus", h.GetConsensus)
		api.GET("/subjects/:id/text", h.GetConsensusText)
	}
	return r
}

func subjectID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": consensus.OutcomeFailed, "error": "Invalid subject id"})
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, consensus.ErrSubjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": consensus.OutcomeFailed, "error": "Subject not found"})
		return
	}
	h.logger.Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"status": consensus.OutcomeFailed, "error": err.Error()})
}
