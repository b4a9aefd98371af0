package security

// AdminGate checks a single shared password. It stores only the bcrypt
// hash computed at startup. A gate built without a password rejects
// every candidate.
type AdminGate struct {
	hasher PasswordHasher
	hash   string
}

// NewAdminGate hashes password with the given bcrypt cost.
func NewAdminGate(password string, cost int) (*AdminGate, error) {
	hasher := NewBcryptHasher(cost)
	if password == "" {
		return &AdminGate{hasher: hasher}, nil
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return &AdminGate{hasher: hasher, hash: hash}, nil
}

// Enabled reports whether a password was configured.
func (g *AdminGate) Enabled() bool {
	return g.hash != ""
}

// Check reports whether candidate matches the configured password.
func (g *AdminGate) Check(candidate string) bool {
	if g.hash == "" || candidate == "" {
		return false
	}
	return g.hasher.Compare(g.hash, candidate) == nil
}
