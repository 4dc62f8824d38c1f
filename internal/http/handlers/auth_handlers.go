package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/session"
)

// AuthHandlers exposes the OTP login wizard
type AuthHandlers struct {
	flows domain.AuthFlowService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(flows domain.AuthFlowService) *AuthHandlers {
	return &AuthHandlers{flows: flows}
}

// PhoneRequest represents the phone step
type PhoneRequest struct {
	Phone string `json:"phone"`
}

// CodeRequest represents the otp step
type CodeRequest struct {
	Code string `json:"code"`
}

// SignupRequest represents the signup step
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type sessionResponse struct {
	Token      string `json:"token"`
	TokenType  string `json:"token_type"`
	ExpiresIn  int64  `json:"expires_in"`
	Role       string `json:"role"`
	RedirectTo string `json:"redirect_to"`
}

type flowResponse struct {
	*domain.FlowStatus
	Session *sessionResponse `json:"session,omitempty"`
}

func respondFlow(c *gin.Context, status int, flow *domain.FlowStatus) {
	resp := flowResponse{FlowStatus: flow}
	if r := flow.Result; r != nil {
		resp.Session = &sessionResponse{
			Token:      r.SessionToken,
			TokenType:  "Bearer",
			ExpiresIn:  r.ExpiresIn,
			Role:       r.Role,
			RedirectTo: r.RedirectTo,
		}
	}
	c.JSON(status, gin.H{"data": resp})
}

// Start opens a new login flow in the phone step
func (h *AuthHandlers) Start(c *gin.Context) {
	flow, err := h.flows.Start(c.Request.Context())
	if err != nil {
		respondError(c, err, msgSendOTPFailed)
		return
	}
	respondFlow(c, http.StatusCreated, flow)
}

// Status reports the flow's step and resend countdown
func (h *AuthHandlers) Status(c *gin.Context) {
	flow, err := h.flows.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, msgSendOTPFailed)
		return
	}
	respondFlow(c, http.StatusOK, flow)
}

// SubmitPhone sends the code to the submitted phone
func (h *AuthHandlers) SubmitPhone(c *gin.Context) {
	var req PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	flow, err := h.flows.SubmitPhone(c.Request.Context(), c.Param("id"), req.Phone)
	if err != nil {
		respondError(c, err, msgSendOTPFailed)
		return
	}
	respondFlow(c, http.StatusOK, flow)
}

// Resend sends a new code once the countdown has run out
func (h *AuthHandlers) Resend(c *gin.Context) {
	flow, err := h.flows.Resend(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, msgSendOTPFailed)
		return
	}
	respondFlow(c, http.StatusOK, flow)
}

// Verify checks the code. Existing customers receive their session here.
func (h *AuthHandlers) Verify(c *gin.Context) {
	var req CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	flow, err := h.flows.VerifyCode(c.Request.Context(), c.Param("id"), req.Code)
	if err != nil {
		respondError(c, err, msgVerifyFailed)
		return
	}
	respondFlow(c, http.StatusOK, flow)
}

// Signup registers a new customer and opens their session
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	flow, err := h.flows.Signup(c.Request.Context(), c.Param("id"), req.FirstName, req.LastName)
	if err != nil {
		respondError(c, err, msgSignupFailed)
		return
	}
	respondFlow(c, http.StatusOK, flow)
}

// Back returns from the code step to the phone step
func (h *AuthHandlers) Back(c *gin.Context) {
	flow, err := h.flows.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, msgSendOTPFailed)
		return
	}
	respondFlow(c, http.StatusOK, flow)
}

// Reset discards the flow's progress and starts over at the phone step
func (h *AuthHandlers) Reset(c *gin.Context) {
	flow, err := h.flows.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, msgSendOTPFailed)
		return
	}
	respondFlow(c, http.StatusOK, flow)
}

// Logout destroys the current session
func (h *AuthHandlers) Logout(c *gin.Context) {
	sess := session.FromContext(c.Request.Context())
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "ابتدا وارد حساب کاربری شوید"})
		return
	}

	if err := h.flows.Logout(c.Request.Context(), sess); err != nil {
		respondError(c, err, msgLogoutFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "با موفقیت از حساب خارج شدید"}})
}
