package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrDeliveryFailed = errors.New("sms delivery failed")

// Notifier delivers a text message to a mobile number.
type Notifier interface {
	Send(ctx context.Context, mobileNumber, message string) error
}

type smsRequest struct {
	SenderID string `json:"sender_id"`
	MobileNo string `json:"mobile_no"`
	MsgTxt   string `json:"msg_txt"`
}

// SMSGateway posts messages to the HTTP SMS gateway. Any non-200 answer
// is a delivery failure.
type SMSGateway struct {
	url      string
	senderID string
	timeout  time.Duration
}

func NewSMSGateway(url, senderID string) *SMSGateway {
	return &SMSGateway{
		url:      url,
		senderID: senderID,
		timeout:  10 * time.Second,
	}
}

func (g *SMSGateway) Send(ctx context.Context, mobileNumber, message string) error {
	timeout := g.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	agent := fiber.Post(g.url).
		JSON(smsRequest{SenderID: g.senderID, MobileNo: mobileNumber, MsgTxt: message}).
		Timeout(timeout)

	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("%w: gateway answered %d", ErrDeliveryFailed, code)
	}
	return nil
}
