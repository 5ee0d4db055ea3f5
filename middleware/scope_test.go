package middleware

import "testing"

func TestResolve(t *testing.T) {
	anonymous := Actor{}
	member := Actor{UserID: 7, Authenticated: true}
	staff := Actor{UserID: 2, IsStaff: true, Authenticated: true}

	tests := []struct {
		name    string
		actor   Actor
		ownerID uint
		want    Scope
	}{
		{"anonymous denied", anonymous, 7, Denied},
		{"member owns row", member, 7, OwnerOnly},
		{"member other row", member, 9, Denied},
		{"staff own row", staff, 2, FullAccess},
		{"staff other row", staff, 7, FullAccess},
		{"staff orphan row", staff, 0, FullAccess},
		{"member orphan row", member, 0, Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.actor, tt.ownerID)
			if got != tt.want {
				t.Errorf("Resolve(%+v, %d) = %v, want %v", tt.actor, tt.ownerID, got, tt.want)
			}
		})
	}
}

func TestScopePermits(t *testing.T) {
	if Denied.Permits() {
		t.Error("denied scope should not permit")
	}
	if !OwnerOnly.Permits() {
		t.Error("owner scope should permit")
	}
	if !FullAccess.Permits() {
		t.Error("full access scope should permit")
	}
}
