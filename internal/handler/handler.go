// Package handler содержит HTTP-обработчики витрины UC.
package handler

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/ucstore/internal/middleware"
	"github.com/mmeshcher/ucstore/internal/model"
	"github.com/mmeshcher/ucstore/internal/service"
	"github.com/mmeshcher/ucstore/internal/validation"
	"github.com/mmeshcher/ucstore/internal/workflow"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Service определяет контракт логики витрины, используемой HTTP-обработчиками.
type Service interface {
	Catalog() service.Catalog
	Contacts() model.Contacts
	Page(sessionID string) service.Page
	OpenDialog(sessionID string, packageID int) error
	UpdatePlayerID(sessionID, playerID string) (validation.Reason, error)
	Submit(ctx context.Context, sessionID, playerID string) workflow.Outcome
	CancelDialog(sessionID string) error
}

// SubmissionObserver учитывает итоги отправки заказов.
type SubmissionObserver interface {
	ObserveSubmission(outcome string)
}

// Handler реализует HTTP-обработчики витрины UC.
type Handler struct {
	service  Service
	logger   *zap.Logger
	sessions *middleware.SessionMiddleware
	observer SubmissionObserver
	extra    []Mount
}

// Mount описывает дополнительный обработчик, подключаемый к роутеру (например, /metrics).
type Mount struct {
	Pattern string
	Handler http.Handler
}

// Option настраивает Handler.
type Option func(*Handler)

// WithObserver подключает учёт итогов отправки заказов.
func WithObserver(o SubmissionObserver) Option {
	return func(h *Handler) {
		h.observer = o
	}
}

// WithMount подключает дополнительный обработчик к роутеру.
func WithMount(pattern string, handler http.Handler) Option {
	return func(h *Handler) {
		h.extra = append(h.extra, Mount{Pattern: pattern, Handler: handler})
	}
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, sessions *middleware.SessionMiddleware, opts ...Option) *Handler {
	h := &Handler{
		service:  s,
		logger:   logger,
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Index отрисовывает страницу витрины.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, h.service.Page(sessionID)); err != nil {
		h.logger.Error("render page error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// OpenOrder открывает диалог заказа для выбранного пакета.
func (h *Handler) OpenOrder(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	packageID, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("package_id")))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.OpenDialog(sessionID, packageID); err != nil {
		h.writeDialogError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type inputResponse struct {
	PlayerID string `json:"player_id"`
	Error    string `json:"error,omitempty"`
}

// UpdateInput сохраняет введённый Player ID; после первой неудачной попытки
// возвращает результат проверки.
func (h *Handler) UpdateInput(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	playerID := r.PostForm.Get("player_id")

	reason, err := h.service.UpdatePlayerID(sessionID, playerID)
	if err != nil {
		h.writeDialogError(w, err)
		return
	}

	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.writeJSON(w, http.StatusOK, inputResponse{PlayerID: playerID, Error: string(reason)})
}

type submitResponse struct {
	Outcome    string `json:"outcome"`
	OrderID    string `json:"order_id,omitempty"`
	PaymentURL string `json:"payment_url,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SubmitOrder проверяет Player ID и отправляет заказ. При наличии ссылки на оплату
// посетитель перенаправляется на неё.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	outcome := h.service.Submit(r.Context(), sessionID, r.PostForm.Get("player_id"))
	if h.observer != nil {
		h.observer.ObserveSubmission(outcome.Kind.String())
	}

	if outcome.Kind == workflow.OutcomeRejected {
		h.writeDialogError(w, outcome.Err)
		return
	}

	if outcome.Kind == workflow.OutcomeFailed {
		h.logger.Warn("order submission failed", zap.Error(outcome.Err))
	}

	if wantsJSON(r) {
		resp := submitResponse{
			Outcome:    outcome.Kind.String(),
			OrderID:    outcome.OrderID.String(),
			PaymentURL: outcome.PaymentURL,
			Error:      string(outcome.Reason),
		}
		status := http.StatusOK
		switch outcome.Kind {
		case workflow.OutcomeInvalid:
			status = http.StatusUnprocessableEntity
		case workflow.OutcomeFailed:
			status = http.StatusBadGateway
			resp.Error = workflow.ErrSubmissionFailed.Error()
		}
		h.writeJSON(w, status, resp)
		return
	}

	if outcome.Kind == workflow.OutcomeRedirect {
		http.Redirect(w, r, outcome.PaymentURL, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CancelOrder закрывает диалог заказа и отбрасывает черновик.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.service.CancelDialog(sessionID); err != nil {
		h.writeDialogError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GetCatalog возвращает пакеты, способы оплаты и FAQ в JSON.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Catalog())
}

// GetContacts возвращает текущие контакты поддержки в JSON.
func (h *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Contacts())
}

// Health сообщает, что процесс жив.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) writeDialogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrUnknownPackage):
		http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
	case errors.Is(err, workflow.ErrSubmissionInFlight), errors.Is(err, workflow.ErrDialogClosed):
		http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
	default:
		h.logger.Error("order dialog error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
