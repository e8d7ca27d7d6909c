package accessibility

// StateSet describes dynamic control state.
type StateSet struct {
	Disabled bool  `json:"disabled,omitempty"`
	Selected bool  `json:"selected,omitempty"`
	Expanded bool  `json:"expanded,omitempty"`
	Checked  *bool `json:"checked,omitempty"`
}

// ValueInfo carries a control's current value.
type ValueInfo struct {
	Text string `json:"text,omitempty"`
}

// Accessible is implemented by widgets that describe themselves to the tree.
type Accessible interface {
	AccessibleRole() Role
	AccessibleLabel() string
	AccessibleDescription() string
	AccessibleState() StateSet
	AccessibleValue() *ValueInfo
}

// Base is an embeddable Accessible implementation.
type Base struct {
	Role        Role
	Label       string
	Description string
	State       StateSet
	Value       *ValueInfo
}

// AccessibleRole returns the role.
func (b *Base) AccessibleRole() Role {
	if b == nil || b.Role == "" {
		return RoleUnknown
	}
	return b.Role
}

// AccessibleLabel returns the label.
func (b *Base) AccessibleLabel() string {
	if b == nil {
		return ""
	}
	return b.Label
}

// AccessibleDescription returns the description.
func (b *Base) AccessibleDescription() string {
	if b == nil {
		return ""
	}
	return b.Description
}

// AccessibleState returns the state set.
func (b *Base) AccessibleState() StateSet {
	if b == nil {
		return StateSet{}
	}
	return b.State
}

// AccessibleValue returns the value, if any.
func (b *Base) AccessibleValue() *ValueInfo {
	if b == nil {
		return nil
	}
	return b.Value
}
