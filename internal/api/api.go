// Package api translates HTTP requests into engine calls and engine
// error kinds into status codes. All game rules live in the engine;
// handlers only bind, dispatch, and render.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/questchase/pursuit/internal/game"
	"github.com/questchase/pursuit/internal/store"
)

type Server struct {
	Arena *game.Arena
	Audit *store.Audit
}

func New(arena *game.Arena, audit *store.Audit) *Server {
	return &Server{Arena: arena, Audit: audit}
}

func (srv *Server) Mount(r *gin.Engine) {
	api := r.Group("/api")
	api.POST("/games", srv.createGame)
	api.POST("/games/:id/end", srv.endGame)
	api.GET("/games/:id/players", srv.leaderboard)
	api.GET("/games/:id/events", srv.events)
	api.POST("/games/:id/join", srv.join)
	api.POST("/games/:id/location", srv.updateLocation)
	api.POST("/games/:id/tag", srv.attemptTag)
	api.POST("/games/:id/stealth", srv.toggleStealth)
	api.POST("/games/:id/bounties", srv.placeBounty)
	api.GET("/games/:id/bounties", srv.listBounties)
	api.POST("/games/:id/sabotages", srv.deploySabotage)
	api.GET("/games/:id/sabotages", srv.listSabotages)
	api.POST("/games/:id/zones", srv.addSafeZone)
	api.POST("/games/:id/alliances", srv.formAlliance)
	api.DELETE("/games/:id/alliances/:playerId", srv.leaveAlliance)
}

func (srv *Server) createGame(c *gin.Context) {
	var req struct {
		HuntID string `json:"huntId" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	g := srv.Arena.CreateGame(req.HuntID, time.Now().UTC())
	c.JSON(http.StatusCreated, gin.H{"gameId": g.ID, "status": g.Status})
}

func (srv *Server) endGame(c *gin.Context) {
	if err := srv.Arena.EndGame(c.Param("id"), time.Now().UTC()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (srv *Server) leaderboard(c *gin.Context) {
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": g.Leaderboard()})
}

func (srv *Server) events(c *gin.Context) {
	if srv.Audit == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "audit_disabled"})
		return
	}
	evs, err := srv.Audit.Events(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": evs})
}

func (srv *Server) join(c *gin.Context) {
	var req struct {
		PlayerID string `json:"playerId" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	p, err := g.Join(req.PlayerID, time.Now().UTC())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player": p})
}

func (srv *Server) updateLocation(c *gin.Context) {
	var req struct {
		PlayerID string   `json:"playerId" binding:"required"`
		Lat      *float64 `json:"lat" binding:"required"`
		Lng      *float64 `json:"lng" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil || !validCoords(*req.Lat, *req.Lng) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := g.UpdateLocation(req.PlayerID, *req.Lat, *req.Lng, time.Now().UTC()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (srv *Server) attemptTag(c *gin.Context) {
	var req struct {
		TaggerID string   `json:"taggerId" binding:"required"`
		TargetID string   `json:"targetId" binding:"required"`
		Lat      *float64 `json:"lat" binding:"required"`
		Lng      *float64 `json:"lng" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil || !validCoords(*req.Lat, *req.Lng) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	res, err := g.AttemptTag(req.TaggerID, req.TargetID, *req.Lat, *req.Lng, time.Now().UTC())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (srv *Server) toggleStealth(c *gin.Context) {
	var req struct {
		PlayerID string `json:"playerId" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	res, err := g.ToggleStealth(req.PlayerID, time.Now().UTC())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (srv *Server) placeBounty(c *gin.Context) {
	var req struct {
		PlacerID string `json:"placerId" binding:"required"`
		TargetID string `json:"targetId" binding:"required"`
		Reward   int    `json:"reward" binding:"required"`
		Reason   string `json:"reason"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	b, err := g.PlaceBounty(req.PlacerID, req.TargetID, req.Reward, req.Reason, time.Now().UTC())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bounty": b})
}

func (srv *Server) listBounties(c *gin.Context) {
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bounties": g.ActiveBounties(time.Now().UTC())})
}

func (srv *Server) deploySabotage(c *gin.Context) {
	var req struct {
		DeployerID string   `json:"deployerId" binding:"required"`
		Kind       string   `json:"kind" binding:"required"`
		Lat        *float64 `json:"lat" binding:"required"`
		Lng        *float64 `json:"lng" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil || !validCoords(*req.Lat, *req.Lng) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	s, err := g.DeploySabotage(req.DeployerID, game.SabotageKind(req.Kind), *req.Lat, *req.Lng, time.Now().UTC())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sabotage": s})
}

func (srv *Server) listSabotages(c *gin.Context) {
	deployerID := c.Query("deployerId")
	if deployerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_deployer_id"})
		return
	}
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sabotages": g.ActiveSabotages(deployerID, time.Now().UTC())})
}

func (srv *Server) addSafeZone(c *gin.Context) {
	var req struct {
		Name     string   `json:"name" binding:"required"`
		Lat      *float64 `json:"lat" binding:"required"`
		Lng      *float64 `json:"lng" binding:"required"`
		Radius   float64  `json:"radius" binding:"required"`
		FromHour int      `json:"activeFromHour"`
		ToHour   int      `json:"activeToHour"`
	}
	if err := c.BindJSON(&req); err != nil || !validCoords(*req.Lat, *req.Lng) || req.Radius <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	z := g.AddSafeZone(req.Name, game.LatLng{Lat: *req.Lat, Lng: *req.Lng}, req.Radius, req.FromHour, req.ToHour)
	c.JSON(http.StatusCreated, gin.H{"zone": z})
}

func (srv *Server) formAlliance(c *gin.Context) {
	var req struct {
		PlayerID  string `json:"playerId" binding:"required"`
		PartnerID string `json:"partnerId" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	al, err := g.FormAlliance(req.PlayerID, req.PartnerID, time.Now().UTC())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"alliance": al})
}

func (srv *Server) leaveAlliance(c *gin.Context) {
	g, err := srv.Arena.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := g.LeaveAlliance(c.Param("playerId")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func validCoords(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// fail maps engine error kinds onto HTTP statuses.
func fail(c *gin.Context, err error) {
	var cd *game.CooldownError
	switch {
	case errors.As(err, &cd):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":             "cooldown",
			"retryAfterSeconds": int(cd.Remaining.Seconds()) + 1,
		})
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, game.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrInvalidReward), errors.Is(err, game.ErrInvalidSabotageType),
		errors.Is(err, game.ErrSelfTarget):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrNotHunter), errors.Is(err, game.ErrTargetImmune),
		errors.Is(err, game.ErrTargetStealthed), errors.Is(err, game.ErrTargetInSafeZone),
		errors.Is(err, game.ErrAlliancePeer), errors.Is(err, game.ErrTooFar),
		errors.Is(err, game.ErrInsufficientScore), errors.Is(err, game.ErrAlreadyAllied),
		errors.Is(err, game.ErrGameNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}
