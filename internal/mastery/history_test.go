package mastery

import (
	"reflect"
	"testing"
)

func TestHistoryDropsOldestBeyondCap(t *testing.T) {
	h := NewHistory[int](3)
	for i := 1; i <= 5; i++ {
		h.Append(i)
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if got, want := h.Values(), []int{3, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func TestHistoryLast(t *testing.T) {
	h := NewHistory[int](10)
	for i := 1; i <= 6; i++ {
		h.Append(i)
	}

	tests := []struct {
		n    int
		want []int
	}{
		{2, []int{5, 6}},
		{6, []int{1, 2, 3, 4, 5, 6}},
		{100, []int{1, 2, 3, 4, 5, 6}},
		{0, []int{}},
	}

	for _, tt := range tests {
		got := h.Last(tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("Last(%d) = %v, want %v", tt.n, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Last(%d) = %v, want %v", tt.n, got, tt.want)
				break
			}
		}
	}
}

func TestHistoryValuesIsACopy(t *testing.T) {
	h := NewHistory[int](5)
	h.Append(1)
	h.Append(2)

	vals := h.Values()
	vals[0] = 99

	if h.Values()[0] != 1 {
		t.Error("mutating Values() result changed the buffer")
	}
}

func TestSkillKey(t *testing.T) {
	tests := []struct {
		topic, subtopic, want string
	}{
		{"fractions", "", "fractions"},
		{"fractions", "addition", "fractions:addition"},
	}
	for _, tt := range tests {
		if got := skillKey(tt.topic, tt.subtopic); got != tt.want {
			t.Errorf("skillKey(%q, %q) = %q, want %q", tt.topic, tt.subtopic, got, tt.want)
		}
	}
}
