package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/suchimauz/clinic-booking-controller/internal/config"
	"github.com/suchimauz/clinic-booking-controller/internal/core/domain"
)

// SessionCounter — число открытых сессий для healthz.
type SessionCounter interface {
	SessionCount() int
}

type BookingPageController struct {
	ws       http.Handler
	sessions SessionCounter
	gatherer prometheus.Gatherer
	cfg      *config.Config
}

// gatherer может быть nil — тогда /metrics не регистрируется.
func NewBookingPageController(ws http.Handler, sessions SessionCounter, gatherer prometheus.Gatherer, cfg *config.Config) *BookingPageController {
	return &BookingPageController{
		ws:       ws,
		sessions: sessions,
		gatherer: gatherer,
		cfg:      cfg,
	}
}

func (c *BookingPageController) RegisterRoutes(router *gin.Engine) {
	booking := router.Group("/booking")
	{
		booking.GET("/ws", c.connect)
		booking.GET("/calendar-options", c.calendarOptions)
	}

	router.GET("/healthz", c.health)

	if c.gatherer != nil {
		metrics := router.Group("/metrics")
		metrics.Use(c.basicAuth())
		metrics.GET("", gin.WrapH(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})))
	}
}

func (c *BookingPageController) connect(ctx *gin.Context) {
	c.ws.ServeHTTP(ctx.Writer, ctx.Request)
}

func (c *BookingPageController) calendarOptions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, domain.DefaultCalendarOptions())
}

func (c *BookingPageController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"version":  c.cfg.App.Version,
		"sessions": c.sessions.SessionCount(),
	})
}

func (c *BookingPageController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth || !c.validClient(username, password) {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Next()
	}
}

func (c *BookingPageController) validClient(username, password string) bool {
	valid := false
	for _, client := range c.cfg.Auth.BasicClients {
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1
		if userOK && passOK {
			valid = true
		}
	}
	return valid
}
