package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"MOVE", ActionMove},
		{"move", ActionMove},
		{"Move", ActionMove},
		{"STRIKE", ActionStrike},
		{" new_map ", ActionNewMap},
		{"ANSWER", ActionAnswer},
		{"spawn_wisp", ActionSpawnWisp},
		{"ATTACK", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		result := ParseAction(tt.input)
		if result != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionMove, "MOVE"},
		{ActionNewMap, "NEW_MAP"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestActionType_IsCheat(t *testing.T) {
	if !ActionTeleport.IsCheat() || !ActionSpawnWisp.IsCheat() {
		t.Error("debug actions must be marked as cheats")
	}
	if ActionMove.IsCheat() || ActionResolve.IsCheat() {
		t.Error("game actions must not be marked as cheats")
	}
}
