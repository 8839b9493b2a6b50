package entities

// Principal is the authenticated caller identity extracted from a
// verified bearer token.
type Principal struct {
	Subject string
	Issuer  string
	Name    string
	Email   string
	Groups  []string
}

// AccessRequest is one authorization question about an HTTP request.
type AccessRequest struct {
	Principal Principal
	Method    string
	Path      string
	HasBody   bool
}

// Decision is the verdict for an AccessRequest. Mode records which
// authorization backend produced it.
type Decision struct {
	Allowed bool
	Mode    string
	Reason  string
}
