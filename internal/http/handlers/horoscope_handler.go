// Horoscope HTTP handlers.
//
// This file exposes the REST endpoint for the daily forecast:
//   - GET /horoscope/today
//
// The endpoint is read-shaped but may generate: on the first request of a
// reference day it can trigger one oracle call that primes both the user's
// bundle and the cross-user shared cache. Subsequent requests the same day
// are served from cache with zero external calls.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TodayHoroscope godoc
// @ID          todayHoroscope
// @Summary     Today's forecast
// @Description Returns the forecast for the user's sign and the current reference day, generating it at most once per user per day.
// @Tags        Horoscope
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object} domain.ForecastPayload
// @Failure     404  {object} handlers.ErrorResponse "Profile not found"
// @Failure     502  {object} handlers.ErrorResponse "Chart or generation backend unavailable"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /horoscope/today [get]
func (h *Handlers) TodayHoroscope(c *gin.Context) {
	f, err := h.horoSvc.Today(c.Request.Context(), userID(c))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, f)
}
