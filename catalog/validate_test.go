package catalog

import "testing"

func TestAccept(t *testing.T) {
	t.Parallel()
	cases := []struct {
		desc        string
		entry       Entry
		hideInvalid bool
		expected    bool
	}{
		{"Base passes", Entry{Role: RoleBase}, true, true},
		{"Unknown passes", Entry{Role: RoleUnknown}, true, true},
		{"Update fails role test", Entry{Role: RoleUpdate}, true, false},
		{"DLC fails role test", Entry{Role: RoleDLC}, true, false},
		{"Broken base rejected", Entry{Role: RoleBase, Outcome: OutcomeParseError}, true, false},
		{"Broken unknown rejected", Entry{Role: RoleUnknown, Outcome: OutcomeParseError}, true, false},
		{"Broken unknown kept when filter off", Entry{Role: RoleUnknown, Outcome: OutcomeParseError}, false, true},
		{"Update kept when filter off", Entry{Role: RoleUpdate}, false, true},
		{"No metadata is not a parse error", Entry{Role: RoleUnknown, Outcome: OutcomeNoMetadata}, true, true},
	}
	for i, tc := range cases {
		if actual := Accept(tc.entry, tc.hideInvalid); actual != tc.expected {
			t.Errorf("%d >%s: expected %v got %v", i, tc.desc, tc.expected, actual)
		}
	}
}
