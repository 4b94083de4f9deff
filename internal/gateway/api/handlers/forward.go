// forward.go — обработчик форвардинга бизнес-запросов.
// Gateway пересылает метод, путь и тело без изменений; ответ upstream
// (включая 4xx) возвращается клиенту как есть.
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/gofeedstore/internal/gateway/api/errors"
	"github.com/bigkaa/gofeedstore/internal/gateway/proxy"
)

// maxBodySize — предел тела запроса. Посты и комментарии маленькие,
// всё сверх предела — явно не наш трафик.
const maxBodySize = 1 << 20 // 1 MiB

// Forward пересылает запрос на здоровый экземпляр Content Service.
func (h *APIHandler) Forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		apierrors.InternalError(w, "не удалось прочитать тело запроса")
		return
	}
	if len(body) > maxBodySize {
		apierrors.WriteError(w, http.StatusRequestEntityTooLarge,
			apierrors.CodeInternalError, "тело запроса слишком большое")
		return
	}

	res, err := h.forwarder.Do(r.Context(), r.Method, r.URL.RequestURI(),
		body, r.Header.Get("Content-Type"))
	if err != nil {
		h.writeForwardError(w, r, err)
		return
	}

	if res.ContentType != "" {
		w.Header().Set("Content-Type", res.ContentType)
	}
	w.WriteHeader(res.StatusCode)
	_, _ = w.Write(res.Body)
}

// writeForwardError переводит ошибку форвардинга в HTTP-ответ.
func (h *APIHandler) writeForwardError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, proxy.ErrNoHealthyInstances):
		apierrors.ServiceUnavailable(w, "нет доступных экземпляров Content Service")
	case errors.Is(err, proxy.ErrUpstreamFailure):
		apierrors.UpstreamFailure(w, "Content Service не ответил после повторной попытки")
	case r.Context().Err() != nil:
		// Клиент разорвал соединение — ответ уже никому не нужен
		h.logger.Debug("Запрос отменён клиентом",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	default:
		h.logger.Error("Неожиданная ошибка форвардинга",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "внутренняя ошибка Gateway")
	}
}
