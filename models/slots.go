package models

import (
	"encoding/json"
	"sort"
)

// SlotKey identifies a (date, time) appointment, e.g. "2025-06-01-09:00".
func SlotKey(date, time string) string {
	return date + "-" + time
}

// BookedSlotSet is the set of slot keys already taken. The zero value is ready to use.
type BookedSlotSet struct {
	keys map[string]struct{}
}

func NewBookedSlotSet(keys ...string) BookedSlotSet {
	var s BookedSlotSet
	for _, k := range keys {
		s.add(k)
	}
	return s
}

func (s *BookedSlotSet) add(key string) {
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
	s.keys[key] = struct{}{}
}

// Mark records the slot as booked.
func (s *BookedSlotSet) Mark(date, time string) {
	s.add(SlotKey(date, time))
}

func (s BookedSlotSet) Contains(date, time string) bool {
	_, ok := s.keys[SlotKey(date, time)]
	return ok
}

func (s BookedSlotSet) Len() int {
	return len(s.keys)
}

// Keys returns the booked keys in ascending order.
func (s BookedSlotSet) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s BookedSlotSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keys())
}

func (s *BookedSlotSet) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	s.keys = nil
	for _, k := range keys {
		s.add(k)
	}
	return nil
}
