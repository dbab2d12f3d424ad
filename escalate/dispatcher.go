// Package escalate maps decisions onto notifications for the reporting
// hierarchy. Dispatch is fire-and-forget: delivery failures are logged and
// never surface as pipeline errors.
package escalate

import (
	"context"
	"fmt"
	"log"

	"github.com/autowhat/attendance-agent/core"
)

// Notifier is the notification delivery channel.
// Implementations: Console (local), wsnotify.Notifier (WebSocket bridge).
type Notifier interface {
	Notify(ctx context.Context, tier core.Tier, message string) error
}

// Dispatcher turns a Decision into zero or one Notification.
type Dispatcher struct {
	notifier Notifier
}

// NewDispatcher creates a Dispatcher delivering through notifier.
func NewDispatcher(notifier Notifier) *Dispatcher {
	return &Dispatcher{notifier: notifier}
}

// Dispatch sends the notification a decision calls for, if any, and returns
// the constructed payload for observability. Slot-filling and log-only
// decisions produce no notification.
func (d *Dispatcher) Dispatch(ctx context.Context, employeeID string, dec core.Decision) *core.Notification {
	n := BuildNotification(employeeID, dec)
	if n == nil {
		return nil
	}

	if d.notifier == nil {
		log.Printf("[ESCALATE] no notifier configured, dropping %s notification", n.Tier)
		return n
	}

	if err := d.notifier.Notify(ctx, n.Tier, n.Message); err != nil {
		// Fire-and-forget: the reply must still reach the employee.
		log.Printf("[ESCALATE] notify %s failed: %v", n.Tier, err)
	}
	return n
}

// BuildNotification constructs the notification payload for a decision,
// or nil when the decision carries no escalation.
func BuildNotification(employeeID string, dec core.Decision) *core.Notification {
	switch dec.Classification {
	case core.EscalateTL, core.SuggestTrain:
		return &core.Notification{
			Tier:    core.TierTeamLeader,
			Message: fmt.Sprintf("Employee %s is late again. Reason: %s", employeeID, dec.RawInput),
		}

	case core.EscalateManager:
		// The team leader's actual name is not available in state; a
		// generic placeholder stands in.
		return &core.Notification{
			Tier: core.TierManager,
			Message: fmt.Sprintf(
				"I have given the suggestion for coming early but employee %s doesn't listen "+
					"and I had also informed the Team Leader (TL) but no actions were taken. "+
					"Current reason: %s",
				employeeID, dec.RawInput),
		}

	default:
		return nil
	}
}

// Console delivers notifications to the process log, mirroring the channel
// prefixes of the production WhatsApp bridge.
type Console struct{}

// Notify prints the notification.
func (Console) Notify(_ context.Context, tier core.Tier, message string) error {
	prefix := "[WHATSAPP]"
	switch tier {
	case core.TierTeamLeader:
		prefix = "[ALERT - WHATSAPP TO TL]"
	case core.TierManager:
		prefix = "[CRITICAL - WHATSAPP TO MANAGER]"
	}
	log.Printf("%s %s", prefix, message)
	return nil
}
