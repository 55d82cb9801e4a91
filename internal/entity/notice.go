package entity

type NoticeKind string

const (
	CreateSavedOffline   NoticeKind = "create_saved_offline"
	UpdateSavedOffline   NoticeKind = "update_saved_offline"
	DeleteRemovedLocally NoticeKind = "delete_removed_locally"
)

// Notice tells the user a mutation degraded to local-only. It never blocks
// further use of the view.
type Notice struct {
	Kind  NoticeKind
	ID    string
	Cause error
}

func (n *Notice) Message() string {
	switch n.Kind {
	case CreateSavedOffline:
		return "Backend unreachable. Transaction saved locally and shown in the list."
	case UpdateSavedOffline:
		return "Backend unreachable. Update saved locally."
	case DeleteRemovedLocally:
		return "Delete failed on the backend. Transaction removed locally."
	}
	return string(n.Kind)
}
