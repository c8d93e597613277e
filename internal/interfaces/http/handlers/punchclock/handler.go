package punchclock

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"timeclock/internal/application/punchclock/dto"
	vo "timeclock/internal/domain/attendance/valueobjects"
	"timeclock/internal/shared/constants"
	"timeclock/internal/shared/logger"
	"timeclock/internal/shared/utils"
)

// Executor interfaces keep the handler testable without the concrete
// use cases.
type IssueTokenExecutor interface {
	Execute(ctx context.Context, request dto.IssueTokenRequest) (*dto.IssueTokenResponse, error)
}

type SubmitPunchExecutor interface {
	Execute(ctx context.Context, request dto.SubmitPunchRequest) (*dto.SubmitPunchResponse, error)
}

type GetCurrentStateExecutor interface {
	Execute(ctx context.Context, userID string) (*dto.CurrentStateResponse, error)
}

type GetWeeklyRowsExecutor interface {
	Execute(ctx context.Context, request dto.GetWeeklyRowsRequest) (*dto.TimesheetResponse, error)
}

type AttachSignatureExecutor interface {
	Execute(ctx context.Context, request dto.AttachSignatureRequest) (*dto.AttachSignatureResponse, error)
}

type ListDriftExceptionsExecutor interface {
	Execute(ctx context.Context, request dto.ListDriftExceptionsRequest) ([]*dto.PunchEventResponse, int64, error)
}

type ListEventsExecutor interface {
	Execute(ctx context.Context, request dto.ListEventsRequest) ([]*dto.PunchEventResponse, int64, error)
}

type PunchClockHandler struct {
	issueTokenUC     IssueTokenExecutor
	submitPunchUC    SubmitPunchExecutor
	currentStateUC   GetCurrentStateExecutor
	weeklyRowsUC     GetWeeklyRowsExecutor
	signatureUC      AttachSignatureExecutor
	driftUC          ListDriftExceptionsExecutor
	listEventsUC     ListEventsExecutor
	trustProxyHeader bool
	logger           logger.Interface
}

// NewPunchClockHandler wires the punch endpoints. trustProxyHeader must
// only be set when every request reaches this service through a reverse
// proxy that overwrites X-Forwarded-For; otherwise callers could spoof
// the address the presence allowlist checks.
func NewPunchClockHandler(
	issueTokenUC IssueTokenExecutor,
	submitPunchUC SubmitPunchExecutor,
	currentStateUC GetCurrentStateExecutor,
	weeklyRowsUC GetWeeklyRowsExecutor,
	signatureUC AttachSignatureExecutor,
	driftUC ListDriftExceptionsExecutor,
	listEventsUC ListEventsExecutor,
	trustProxyHeader bool,
) *PunchClockHandler {
	return &PunchClockHandler{
		issueTokenUC:     issueTokenUC,
		submitPunchUC:    submitPunchUC,
		currentStateUC:   currentStateUC,
		weeklyRowsUC:     weeklyRowsUC,
		signatureUC:      signatureUC,
		driftUC:          driftUC,
		listEventsUC:     listEventsUC,
		trustProxyHeader: trustProxyHeader,
		logger:           logger.NewLogger(),
	}
}

// IssueToken handles POST /punch/token
func (h *PunchClockHandler) IssueToken(c *gin.Context) {
	deviceID := c.GetHeader(constants.HeaderDeviceID)
	result, err := h.issueTokenUC.Execute(c.Request.Context(), dto.IssueTokenRequest{
		UserID:    c.GetString(constants.ContextKeyUserID),
		DeviceID:  deviceID,
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Punch token issued")
}

// SubmitPunch handles POST /punch
func (h *PunchClockHandler) SubmitPunch(c *gin.Context) {
	var req SubmitPunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid punch request body", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	request := req.toUseCaseRequest(c,
		c.GetString(constants.ContextKeyUserID),
		c.GetString(constants.ContextKeySiteID),
		c.GetString(constants.ContextKeyAgency),
		h.clientIP(c),
	)

	result, err := h.submitPunchUC.Execute(c.Request.Context(), request)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if !result.Accepted {
		if result.RetryAfterSeconds > 0 {
			c.Header("Retry-After", strconv.Itoa(result.RetryAfterSeconds))
		}
		c.JSON(blockedStatus(result.Reason), utils.APIResponse{
			Success: false,
			Data:    result,
			Error: &utils.ErrorInfo{
				Type:    "punch_blocked",
				Message: "punch was not accepted",
				Details: result.Reason,
			},
		})
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Punch accepted", result)
}

// GetCurrentState handles GET /punch/state
func (h *PunchClockHandler) GetCurrentState(c *gin.Context) {
	result, err := h.currentStateUC.Execute(c.Request.Context(), c.GetString(constants.ContextKeyUserID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetWeeklyRows handles GET /punch/timesheet
func (h *PunchClockHandler) GetWeeklyRows(c *gin.Context) {
	result, err := h.weeklyRowsUC.Execute(c.Request.Context(), dto.GetWeeklyRowsRequest{
		UserID: c.GetString(constants.ContextKeyUserID),
		SiteID: c.Query("site_id"),
		WeekOf: c.Query("week_of"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AttachSignature handles POST /punch/events/:id/signature
func (h *PunchClockHandler) AttachSignature(c *gin.Context) {
	var req AttachSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid signature request body", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.signatureUC.Execute(c.Request.Context(), dto.AttachSignatureRequest{
		UserID:         c.GetString(constants.ContextKeyUserID),
		EventID:        c.Param("id"),
		SignatureImage: req.SignatureImage,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Signature attached", result)
}

// ListDriftExceptions handles GET /punch/exceptions/drift
func (h *PunchClockHandler) ListDriftExceptions(c *gin.Context) {
	page, pageSize := paginationFrom(c)
	items, total, err := h.driftUC.Execute(c.Request.Context(), dto.ListDriftExceptionsRequest{
		From:     c.Query("from"),
		To:       c.Query("to"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, items, total, page, pageSize)
}

// ListEvents handles GET /punch/events
func (h *PunchClockHandler) ListEvents(c *gin.Context) {
	page, pageSize := paginationFrom(c)
	items, total, err := h.listEventsUC.Execute(c.Request.Context(), dto.ListEventsRequest{
		UserID:   c.Query("user_id"),
		SiteID:   c.Query("site_id"),
		Agency:   c.Query("agency"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, items, total, page, pageSize)
}

// clientIP resolves the address the presence allowlist and IP limiter
// key on. The default trusts only the socket peer; behind a trusted
// reverse proxy the socket peer is the proxy itself, so the first
// Forwarded-For hop is used instead.
func (h *PunchClockHandler) clientIP(c *gin.Context) string {
	if h.trustProxyHeader {
		if xff := c.GetHeader(constants.HeaderXForwardedFor); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}
	return firstHopIP(c)
}

// firstHopIP returns the transport-level peer address.
func firstHopIP(c *gin.Context) string {
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

func blockedStatus(reason string) int {
	switch vo.BlockReason(reason) {
	case vo.ReasonNotEligible:
		return http.StatusForbidden
	case vo.ReasonRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusConflict
	}
}

func paginationFrom(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", fmt.Sprintf("%d", constants.DefaultPage)))
	if err != nil || page < 1 {
		page = constants.DefaultPage
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", fmt.Sprintf("%d", constants.DefaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return page, pageSize
}
