// Package notify sends interview invites. Two deliberately separate
// operations live here: SendInvite is the synchronous single-candidate send
// with a real success/failure answer; Queue is the deferred bulk path that
// only promises "queued", never delivery.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	pkghttp "talent-track/pkg/http"
)

const defaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Invite carries the template parameters for one interview invite.
type Invite struct {
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	InterviewDate  string `json:"interviewDate"`
	Notes          string `json:"notes"`
}

// Client talks to the EmailJS REST API.
type Client struct {
	http        *pkghttp.Client
	endpoint    string
	serviceID   string
	templateID  string
	userID      string
	companyName string
	logger      *zap.Logger
}

func NewClient(serviceID, templateID, userID, companyName string, logger *zap.Logger) *Client {
	return &Client{
		http:        pkghttp.NewClient(15 * time.Second),
		endpoint:    defaultEndpoint,
		serviceID:   serviceID,
		templateID:  templateID,
		userID:      userID,
		companyName: companyName,
		logger:      logger,
	}
}

// Configured reports whether all EmailJS identifiers are present.
func (c *Client) Configured() bool {
	return c != nil && c.serviceID != "" && c.templateID != "" && c.userID != ""
}

// SendInvite delivers one interview invite synchronously. A nil return means
// the provider accepted the message.
func (c *Client) SendInvite(ctx context.Context, invite Invite) error {
	if !c.Configured() {
		return fmt.Errorf("email service not configured")
	}

	payload := map[string]any{
		"service_id":  c.serviceID,
		"template_id": c.templateID,
		"user_id":     c.userID,
		"template_params": map[string]string{
			"to_name":            invite.CandidateName,
			"to_email":           invite.CandidateEmail,
			"interview_datetime": invite.InterviewDate,
			"company_name":       c.companyName,
			"notes":              invite.Notes,
		},
	}

	resp, err := c.http.PostJSON(ctx, c.endpoint, payload)
	if err != nil {
		return fmt.Errorf("send invite: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("email provider rejected invite",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return fmt.Errorf("email provider returned %d", resp.StatusCode)
	}

	c.logger.Info("invite sent", zap.String("to", invite.CandidateEmail))
	return nil
}
