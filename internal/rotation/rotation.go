package rotation

import (
	"sort"

	"github.com/mfenwick/rota/internal/model"
)

// Eligible returns the active participants in rotation order: by name
// ascending, with ties broken by creation time and then by id so the order
// is total. The order is derived fresh from the given set on every call and
// is never cached anywhere.
func Eligible(participants []model.Participant) []model.Participant {
	var out []model.Participant
	for _, p := range participants {
		if p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Advance computes the next rotation pointer after currentID. An empty
// currentID, or one that no longer appears among the active participants
// (deactivated or deleted since the last advance), resets to the first
// eligible participant. Otherwise the successor is returned, wrapping to
// the first after the last. Returns "" when nobody is active.
func Advance(currentID string, participants []model.Participant) string {
	eligible := Eligible(participants)
	if len(eligible) == 0 {
		return ""
	}
	for i, p := range eligible {
		if p.ID == currentID {
			return eligible[(i+1)%len(eligible)].ID
		}
	}
	return eligible[0].ID
}

// Reassign picks a pointer for a task whose current assignee is being
// removed: the first eligible participant excluding excludeID, or "" if no
// other active participant exists. Unlike Advance this does not depend on
// the old pointer's position in the cycle.
func Reassign(excludeID string, participants []model.Participant) string {
	for _, p := range Eligible(participants) {
		if p.ID != excludeID {
			return p.ID
		}
	}
	return ""
}
