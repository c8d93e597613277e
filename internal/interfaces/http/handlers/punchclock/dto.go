package punchclock

import (
	"github.com/gin-gonic/gin"

	"timeclock/internal/application/punchclock/dto"
	"timeclock/internal/shared/constants"
)

// SubmitPunchRequest is the JSON body of a punch. The device, idempotency,
// and token credentials travel in headers so request bodies can be retried
// byte-identical.
type SubmitPunchRequest struct {
	Type              string   `json:"type" binding:"required,oneof=CLOCK_IN LUNCH_START LUNCH_END CLOCK_OUT"`
	ClientTimestampMS *int64   `json:"client_timestamp_ms,omitempty"`
	Lat               *float64 `json:"lat,omitempty" binding:"omitempty,min=-90,max=90"`
	Lng               *float64 `json:"lng,omitempty" binding:"omitempty,min=-180,max=180"`
	AccuracyMeters    *float64 `json:"accuracy_meters,omitempty" binding:"omitempty,min=0"`
}

func (r *SubmitPunchRequest) toUseCaseRequest(c *gin.Context, userID, siteID, agency, clientIP string) dto.SubmitPunchRequest {
	return dto.SubmitPunchRequest{
		UserID:            userID,
		SiteID:            siteID,
		Agency:            agency,
		Type:              r.Type,
		DeviceID:          c.GetHeader(constants.HeaderDeviceID),
		IdempotencyKey:    c.GetHeader(constants.HeaderIdempotencyKey),
		PunchToken:        c.GetHeader(constants.HeaderPunchToken),
		UserAgent:         c.Request.UserAgent(),
		ClientIP:          clientIP,
		ClientTimestampMS: r.ClientTimestampMS,
		Lat:               r.Lat,
		Lng:               r.Lng,
		AccuracyMeters:    r.AccuracyMeters,
	}
}

// AttachSignatureRequest is the JSON body for signing a clock-out.
type AttachSignatureRequest struct {
	SignatureImage string `json:"signature_image" binding:"required"`
}
