package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Portal 2", "portal 2"},
		{"The Witcher 3: Wild Hunt", "the witcher 3 wild hunt"},
		{"S.T.A.L.K.E.R.", "stalker"},
		{"Counter-Strike: Global Offensive", "counterstrike global offensive"},
		{"  Extra   Spaces  ", "extra spaces"},
		{"Pokémon", "pokmon"},
		{"100% Orange Juice", "100 orange juice"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Portal 2",
		"The Witcher 3: Wild Hunt",
		"Counter-Strike: Global Offensive",
		"  Extra   Spaces  ",
		"Pokémon",
		"",
	}

	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestQueryTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Pokémon Mystery Dungeon", "Pokemon Mystery Dungeon"},
		{"Ratchet & Clank", "Ratchet and Clank"},
		{"  Dark   Souls  ", "Dark Souls"},
		{"Ōkami", "Okami"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := QueryTitle(tt.input)
			if got != tt.want {
				t.Errorf("QueryTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
