package matches

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	league "github.com/courtside/league-sync/repos/league"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Matches is the interface for the score-reporting service.
type Matches interface {
	ReportScore(c context.Context, matchID string, request ScoreRequest) error
	ListLive(c context.Context) ([]league.Match, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Matches

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/score/:match_id", h.scoreHandler)
	r.GET("/live", h.liveHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) scoreHandler(c *gin.Context) {
	matchID := c.Param("match_id")

	var request ScoreRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	err := h.Service.ReportScore(c, matchID, request)
	if err != nil {
		switch err {
		case league.ErrMatchFinal:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case league.ErrMatchNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case ErrInvalidScore, ErrInvalidStatus:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Could not report score: %v\n", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		c.Abort()
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Score registered",
	})
}

func (h *httpHandler) liveHandler(c *gin.Context) {
	matches, err := h.Service.ListLive(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
