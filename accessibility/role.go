// Package accessibility models the control tree exposed by a host: roles,
// actions, node handles and the errors every read may produce.
package accessibility

// Role identifies what kind of control a node represents.
type Role string

const (
	RoleUnknown     Role = "unknown"
	RoleApplication Role = "application"
	RoleWindow      Role = "window"
	RoleGroup       Role = "group"
	RoleToolbar     Role = "toolbar"
	RoleStaticText  Role = "statictext"
	RoleImage       Role = "image"
	RoleList        Role = "list"
	RoleMenu        Role = "menu"
	RoleMenuBar     Role = "menubar"
	RoleTabList     Role = "tablist"

	RoleButton      Role = "button"
	RoleLink        Role = "link"
	RoleCheckbox    Role = "checkbox"
	RoleRadio       Role = "radio"
	RoleSwitch      Role = "switch"
	RoleMenuItem    Role = "menuitem"
	RoleMenuBarItem Role = "menubaritem"
	RoleMenuButton  Role = "menubutton"
	RolePopUpButton Role = "popupbutton"
	RoleComboBox    Role = "combobox"
	RoleTab         Role = "tab"
	RoleTextbox     Role = "textbox"
	RoleSearchField Role = "searchfield"
	RoleSlider      Role = "slider"
	RoleDisclosure  Role = "disclosure"
	RoleTreeItem    Role = "treeitem"
	RoleOption      Role = "option"
)

// InteractiveRoles is the default allow-list used by the collector.
var InteractiveRoles = []Role{
	RoleButton,
	RoleLink,
	RoleCheckbox,
	RoleRadio,
	RoleSwitch,
	RoleMenuItem,
	RoleMenuBarItem,
	RoleMenuButton,
	RolePopUpButton,
	RoleComboBox,
	RoleTab,
	RoleTextbox,
	RoleSearchField,
	RoleSlider,
	RoleDisclosure,
	RoleTreeItem,
	RoleOption,
}

// RoleSet is a membership set of roles.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

// Has reports whether role is in the set.
func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// Action names an operation a node can perform.
type Action string

const (
	// ActionPress is the canonical click.
	ActionPress Action = "press"
	// ActionShowMenu is the secondary, right-click equivalent.
	ActionShowMenu Action = "show-menu"
	// ActionFocus moves keyboard focus to the node without activating it.
	ActionFocus Action = "focus"
	// ActionActivate is exposed by toolkits whose custom roles still click.
	ActionActivate Action = "activate"
)
