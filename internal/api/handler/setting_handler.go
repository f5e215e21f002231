package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studentregistry/registry-api/internal/core/domain"
	"github.com/studentregistry/registry-api/internal/core/ports"
)

type SettingHandler struct {
	settings ports.SettingService
}

func NewSettingHandler(settings ports.SettingService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

type settingRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type settingValueRequest struct {
	Value string `json:"value" validate:"required"`
}

func (h *SettingHandler) List(c echo.Context) error {
	settings, err := h.settings.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *SettingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	setting, err := h.settings.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setting)
}

func (h *SettingHandler) GetByKey(c echo.Context) error {
	setting, err := h.settings.GetByKey(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setting)
}

func (h *SettingHandler) ExistsByKey(c echo.Context) error {
	exists, err := h.settings.ExistsByKey(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}

// Value returns the raw setting value, empty string when unset.
func (h *SettingHandler) Value(c echo.Context) error {
	value, err := h.settings.Value(c.Request().Context(), c.Param("key"), "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"value": value})
}

func (h *SettingHandler) Create(c echo.Context) error {
	var req settingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	setting, err := h.settings.Create(c.Request().Context(), &domain.Setting{Key: req.Key, Value: req.Value})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, setting)
}

func (h *SettingHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req settingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	setting, err := h.settings.Update(c.Request().Context(), id, &domain.Setting{Key: req.Key, Value: req.Value})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setting)
}

// SetByKey upserts the value under the given key.
func (h *SettingHandler) SetByKey(c echo.Context) error {
	var req settingValueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	setting, err := h.settings.SetByKey(c.Request().Context(), c.Param("key"), req.Value, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setting)
}

func (h *SettingHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.settings.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SettingHandler) DeleteByKey(c echo.Context) error {
	if err := h.settings.DeleteByKey(c.Request().Context(), c.Param("key")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CurrentSemester reads the current_semester setting.
func (h *SettingHandler) CurrentSemester(c echo.Context) error {
	value, err := h.settings.Value(c.Request().Context(), domain.SettingCurrentSemester, "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"semester": value})
}

// SetCurrentSemester updates the current_semester setting; the change is
// audited as UPDATE_SEMESTER.
func (h *SettingHandler) SetCurrentSemester(c echo.Context) error {
	var req settingValueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	setting, err := h.settings.SetByKey(c.Request().Context(), domain.SettingCurrentSemester, req.Value, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setting)
}
