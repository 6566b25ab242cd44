// Package request разбирает тела и параметры HTTP-запросов и сам отвечает
// клиенту 400 или 422, если данные некорректны.
package request

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/focuszen/internal/http/response"
	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
)

// DecodeJSON читает тело запроса в dst и проверяет его тегами validate.
// При ошибке отвечает 400 или 422 и возвращает false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, log *slog.Logger, v *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return false
	}
	if err := v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			log.Error("validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return false
		}
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verrs))
		return false
	}
	return true
}

// Limit читает query-параметр limit. Пустое значение дает 0,
// отрицательное или нечисловое считается ошибкой клиента.
func Limit(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		log.Info("invalid limit", slog.String("limit", raw))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("limit must be a non-negative integer"))
		return 0, false
	}
	return limit, true
}
