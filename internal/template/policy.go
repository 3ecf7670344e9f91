package template

import "fmt"

// PolicyVersion is the IAM policy language version used for all generated
// policy documents.
const PolicyVersion = "2012-10-17"

// PolicyDocument is an ordered list of access-policy statements attached to
// a queue or topic policy resource.
type PolicyDocument struct {
	Version   string       `json:"Version"`
	Statement []*Statement `json:"Statement"`
}

// Statement grants or denies one principal a set of actions on a resource.
// Resource is either a literal ARN string or an intrinsic reference.
type Statement struct {
	Sid       string         `json:"Sid"`
	Effect    string         `json:"Effect"`
	Principal Principal      `json:"Principal"`
	Action    string         `json:"Action"`
	Resource  any            `json:"Resource"`
	Condition map[string]any `json:"Condition,omitempty"`
}

// Principal identifies the AWS service a statement applies to.
type Principal struct {
	Service string `json:"Service"`
}

// Append adds a statement and assigns its Sid from the current statement
// count. Sids are sequential per document and assigned only at append time;
// there is no removal path, so they stay unique.
func (d *PolicyDocument) Append(s *Statement) {
	s.Sid = fmt.Sprintf("Statement%d", len(d.Statement)+1)
	d.Statement = append(d.Statement, s)
}
