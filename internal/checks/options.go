package checks

import "encoding/json"

// MergeOptionValue combines a stored option value with a new one.
//
// Scalar values are simply replaced. When both values are JSON string
// arrays the result is their union, keeping the stored order and
// appending unseen new entries. List-valued options collect answers over
// time (one per image, frame or button), so replacing the whole list
// would throw earlier answers away.
func MergeOptionValue(stored, incoming string) string {
	storedList, ok := decodeStringList(stored)
	if !ok {
		return incoming
	}
	incomingList, ok := decodeStringList(incoming)
	if !ok {
		return incoming
	}

	seen := make(map[string]bool, len(storedList))
	merged := make([]string, 0, len(storedList)+len(incomingList))
	for _, v := range storedList {
		if !seen[v] {
			seen[v] = true
			merged = append(merged, v)
		}
	}
	for _, v := range incomingList {
		if !seen[v] {
			seen[v] = true
			merged = append(merged, v)
		}
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return incoming
	}
	return string(out)
}

func decodeStringList(s string) ([]string, bool) {
	if s == "" {
		return nil, false
	}
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, false
	}
	return list, true
}
