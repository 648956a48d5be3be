package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/xtding233/roulette/internal/app"
	"github.com/xtding233/roulette/internal/roulette"
)

type Handler struct {
	svc *app.RouletteService
}

func NewHandler(svc *app.RouletteService) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the API routes. Routes under /v1 pass through mw.
func (h *Handler) Register(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.GET("/healthz", h.Healthz)

	v1 := e.Group("/v1", mw...)
	v1.GET("/spin", h.SpinQuery)
	v1.POST("/spin", h.SpinBody)
	v1.POST("/share", h.Share)
	v1.GET("/restore", h.Restore)
	v1.GET("/simulate", h.Simulate)
	v1.GET("/presets", h.ListPresets)
	v1.GET("/presets/:name", h.GetPreset)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// SpinQuery spins the state carried in the request's query string, in the
// same format as a share link.
func (h *Handler) SpinQuery(c echo.Context) error {
	res := h.svc.SpinRawQuery(app.SurfaceHTTP, c.QueryString())
	return c.JSON(http.StatusOK, toSpinResponse(res))
}

func (h *Handler) SpinBody(c echo.Context) error {
	var req StateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}
	res := h.svc.SpinState(app.SurfaceHTTP, req.state())
	return c.JSON(http.StatusOK, toSpinResponse(res))
}

func (h *Handler) Share(c echo.Context) error {
	var req StateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}
	res := h.svc.Share(app.SurfaceHTTP, req.state())
	return c.JSON(http.StatusOK, ShareResponse{Query: res.Query, ShareURL: res.ShareURL})
}

func (h *Handler) Restore(c echo.Context) error {
	st := h.svc.RestoreRawQuery(c.QueryString())
	return c.JSON(http.StatusOK, RestoreResponse{
		Items: toItemDTOs(st.Items),
		Draws: st.DrawCount,
		Empty: st.Empty(),
	})
}

func (h *Handler) Simulate(c echo.Context) error {
	trials := h.svc.DefaultTrials()
	if raw := c.QueryParam("trials"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "trials must be an integer"})
		}
		trials = n
	}
	rep, err := h.svc.Simulate(c.QueryString(), trials)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) ListPresets(c echo.Context) error {
	names, err := h.svc.Presets()
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, PresetListResponse{Presets: names})
}

func (h *Handler) GetPreset(c echo.Context) error {
	view, err := h.svc.Preset(c.Param("name"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, PresetResponse{
		Name:     view.Preset.Name,
		Title:    view.Preset.Title,
		Items:    toItemDTOs(view.Preset.Items),
		Draws:    view.Preset.Draws,
		ShareURL: view.ShareURL,
	})
}

func toSpinResponse(r app.SpinResult) SpinResponse {
	return SpinResponse{
		Results:  r.Results,
		Items:    toItemDTOs(r.State.Items),
		Draws:    r.State.DrawCount,
		ShareURL: r.ShareURL,
	}
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case app.IsNotFound(err):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, roulette.ErrInvalidTrials), errors.Is(err, roulette.ErrNoItems):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
