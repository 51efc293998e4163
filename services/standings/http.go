package standings

import (
	"context"
	"crypto/subtle"
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

// Standings is the interface for the standings pipeline.
type Standings interface {
	UpdateStandings(ctx context.Context, tournamentID string) (*UpdateOutcome, error)
	GetStandings(ctx context.Context, tournamentID string) ([]league.StandingRow, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Standings

	// The router instance to configure the HTTP routes.
	Router Router

	// Shared secret the trigger must present.
	Secret string
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/update", h.updateHandler)
	r.GET("/:tournament_id", h.getHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) updateHandler(c *gin.Context) {
	var request UpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	// Secret and input checks happen before any backend call.
	if subtle.ConstantTimeCompare([]byte(request.Secret), []byte(h.Secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
		return
	}

	if request.TournamentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing tournamentId"})
		c.Abort()
		return
	}

	outcome, err := h.Service.UpdateStandings(c, request.TournamentID)
	if err != nil {
		if err == league.ErrTournamentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
			c.Abort()
			return
		}
		log.Printf("Could not update standings: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"newStandings":    outcome.Standings,
		"historyFailures": outcome.HistoryFailures,
	})
}

func (h *httpHandler) getHandler(c *gin.Context) {
	tournamentID := c.Param("tournament_id")

	rows, err := h.Service.GetStandings(c, tournamentID)
	if err != nil {
		if err == league.ErrTournamentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{"standings": rows})
}
