package action

import "testing"

func TestKeymap_Classify(t *testing.T) {
	keys := DefaultKeymap()

	tests := []struct {
		key  string
		want Token
		ok   bool
	}{
		{"a", Column(0), true},
		{"k", Column(7), true},
		{"r", Reserve(), true},
		{"t", Pile(), true},
		{" ", Cancel(), true},
		{"esc", Cancel(), true},
		{"u", Token{}, false},
		{"A", Token{}, false},
	}

	for _, tt := range tests {
		got, ok := keys.Classify(tt.key)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Classify(%q): expected %v/%v, got %v/%v", tt.key, tt.want, tt.ok, got, ok)
		}
	}
}

func TestKeymap_Validate(t *testing.T) {
	if err := DefaultKeymap().Validate(); err != nil {
		t.Fatalf("Default keymap invalid: %v", err)
	}

	short := DefaultKeymap()
	short.Columns = short.Columns[:7]
	if err := short.Validate(); err == nil {
		t.Error("Expected error for seven column keys")
	}

	clash := DefaultKeymap()
	clash.Pile = "a"
	if err := clash.Validate(); err == nil {
		t.Error("Expected error for a key bound twice")
	}

	blank := DefaultKeymap()
	blank.Reserve = ""
	if err := blank.Validate(); err == nil {
		t.Error("Expected error for an empty key")
	}
}

func TestKeymap_Custom(t *testing.T) {
	keys := Keymap{
		Columns: []string{"1", "2", "3", "4", "5", "6", "7", "8"},
		Reserve: "q",
		Pile:    "w",
		Cancel:  []string{"x"},
	}
	if err := keys.Validate(); err != nil {
		t.Fatalf("Custom keymap invalid: %v", err)
	}

	if tok, ok := keys.Classify("3"); !ok || tok != Column(2) {
		t.Errorf("Expected column 2, got %v", tok)
	}
	if tok, _ := keys.Classify("x"); tok != Cancel() {
		t.Errorf("Expected cancel, got %v", tok)
	}
	if label := keys.Label(Pile()); label != "W" {
		t.Errorf("Expected W, got %s", label)
	}
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		in      string
		want    Token
		wantErr bool
	}{
		{"reserve", Reserve(), false},
		{"pile", Pile(), false},
		{"foundation", Pile(), false},
		{"cancel", Cancel(), false},
		{"0", Column(0), false},
		{"7", Column(7), false},
		{"north", Token{}, true},
	}

	for _, tt := range tests {
		got, err := ParseToken(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseToken(%q): unexpected error state: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseToken(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
