package domain

import "testing"

func TestLedgerEntrySigned(t *testing.T) {
	credit := LedgerEntry{Direction: LedgerCredit, Amount: 15}
	if got := credit.Signed(); got != 15 {
		t.Errorf("credit Signed() = %d, want 15", got)
	}

	debit := LedgerEntry{Direction: LedgerDebit, Amount: 15}
	if got := debit.Signed(); got != -15 {
		t.Errorf("debit Signed() = %d, want -15", got)
	}
}

func TestProfileIsReviewer(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleFan, false},
		{RoleCreator, true},
		{RoleAdmin, true},
	}
	for _, tc := range cases {
		p := Profile{Role: tc.role}
		if got := p.IsReviewer(); got != tc.want {
			t.Errorf("IsReviewer() for %s = %v, want %v", tc.role, got, tc.want)
		}
	}
}
