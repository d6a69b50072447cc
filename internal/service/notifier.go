package service

// Notifier pushes user-visible events (the web app renders them as toasts).
// Delivery is best effort and must never block or fail a settlement.
type Notifier interface {
	Notify(profileID int64, event string, payload any)
}
