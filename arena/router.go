package arena

import "github.com/skyduel/skyduel/events"

// broadcast marshals ev once and appends it to every session queue in the
// room except the sender's. With two-player rooms this is unicast to the
// opponent, but nothing here depends on the room size. Callers hold a.mu.
func (r *Room) broadcast(senderID string, ev any) error {
	bz, err := events.Encode(ev)
	if err != nil {
		return err
	}
	for id, s := range r.sessions {
		if id == senderID {
			continue
		}
		s.enqueue(bz)
	}
	return nil
}

// direct delivers ev to a single recipient. A missing recipient is dropped
// silently: the opponent may legitimately have left between the triggering
// event and its confirmation. Callers hold a.mu.
func (r *Room) direct(toSid string, ev any) error {
	s, ok := r.sessions[toSid]
	if !ok {
		return nil
	}
	bz, err := events.Encode(ev)
	if err != nil {
		return err
	}
	s.enqueue(bz)
	return nil
}
