package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vobe/voicedesk/application/port/inbound"
	"github.com/vobe/voicedesk/infrastructure/http/middleware"
	"github.com/vobe/voicedesk/infrastructure/http/response"
	"github.com/vobe/voicedesk/infrastructure/service/logger"
)

type CommunicationHandler struct {
	voiceUseCase inbound.VoiceUseCase
	authMw       *middleware.AuthMiddleware
	logger       logger.Logger
}

func NewCommunicationHandler(voiceUseCase inbound.VoiceUseCase, authMw *middleware.AuthMiddleware, log logger.Logger) *CommunicationHandler {
	return &CommunicationHandler{
		voiceUseCase: voiceUseCase,
		authMw:       authMw,
		logger:       log,
	}
}

func (h *CommunicationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/communication/token", h.authMw.RequireAuth(h.IssueToken)).Methods(http.MethodPost)
	router.HandleFunc("/communication/call", h.RouteCall).Methods(http.MethodPost)
}

// IssueToken signs a voice grant token for the authenticated caller. The
// identity may come from the JSON body or the query string; it defaults to
// the verified account email.
func (h *CommunicationHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		response.Unauthorized(w, "Could not validate credentials")
		return
	}

	var req inbound.VoiceTokenRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}
	}
	if req.Identity == "" {
		req.Identity = r.URL.Query().Get("identity")
	}
	req.CallerEmail = user.Email

	res, err := h.voiceUseCase.IssueToken(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}

// RouteCall answers the provider's call webhook with a routing document.
// It never fails loudly: an unroutable payload gets the greeting document.
func (h *CommunicationHandler) RouteCall(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn(r.Context(), "malformed call webhook payload", map[string]interface{}{
			"error": err.Error(),
		})
	}

	doc, err := h.voiceUseCase.RouteCall(r.Context(), inbound.CallRequest{
		To:    r.PostFormValue("To"),
		Phone: r.PostFormValue("phone"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	response.XML(w, http.StatusOK, doc)
}
