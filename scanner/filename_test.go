package scanner

import "testing"

func TestParseFileName(t *testing.T) {
	t.Parallel()
	cases := []struct {
		desc            string
		input           string
		expectedName    string
		expectedID      uint64
		expectedVersion uint32
	}{
		{"Full tags", "Zelda [0100000000010000][v65536].nsp", "Zelda", 0x0100000000010000, 65536},
		{"Id only", "Mario [0100000000020000].xci", "Mario", 0x0100000000020000, 0},
		{"No tags", "homebrew-tool.nsp", "homebrew-tool", 0, 0},
		{"Lowercase hex", "Game [0100a1b2c3d4e000][v0].nsz", "Game", 0x0100a1b2c3d4e000, 0},
		{"Id without name", "[0100000000010800][v131072].nsp", "", 0x0100000000010800, 131072},
		{"Ugly symbols stripped", "Zelda™: Breath [0100000000010000].nsp", "Zelda Breath", 0x0100000000010000, 0},
		{"Short tag ignored", "Thing [0100].nsp", "Thing", 0, 0},
	}
	for i, tc := range cases {
		meta, err := parseFileName(tc.input)
		if err != nil {
			t.Errorf("%d >%s: unexpected error %v", i, tc.desc, err)
			continue
		}
		if meta.name != tc.expectedName {
			t.Errorf("%d >%s: expected name >%s< got >%s<", i, tc.desc, tc.expectedName, meta.name)
		}
		if meta.titleID != tc.expectedID {
			t.Errorf("%d >%s: expected id %016x got %016x", i, tc.desc, tc.expectedID, meta.titleID)
		}
		if meta.version != tc.expectedVersion {
			t.Errorf("%d >%s: expected version %d got %d", i, tc.desc, tc.expectedVersion, meta.version)
		}
	}
}

func TestParseFileNameUnhappy(t *testing.T) {
	t.Parallel()
	for _, input := range []string{".nsp", "[0100].nsp", "   .xci"} {
		if _, err := parseFileName(input); err == nil {
			t.Errorf("expected error for >%s<", input)
		}
	}
}
