package browser

import (
	"strings"

	"github.com/odvcencio/furry-hints/accessibility"
)

// elementInfo is what one describe round trip reads from an element.
type elementInfo struct {
	Tag       string `json:"tag"`
	Type      string `json:"type"`
	Role      string `json:"role"`
	Title     string `json:"title"`
	Href      bool   `json:"href"`
	Disabled  bool   `json:"disabled"`
	Clickable bool   `json:"clickable"`
}

var ariaRoles = map[string]accessibility.Role{
	"button":           accessibility.RoleButton,
	"link":             accessibility.RoleLink,
	"checkbox":         accessibility.RoleCheckbox,
	"radio":            accessibility.RoleRadio,
	"switch":           accessibility.RoleSwitch,
	"menuitem":         accessibility.RoleMenuItem,
	"menuitemcheckbox": accessibility.RoleMenuItem,
	"menuitemradio":    accessibility.RoleMenuItem,
	"tab":              accessibility.RoleTab,
	"textbox":          accessibility.RoleTextbox,
	"searchbox":        accessibility.RoleSearchField,
	"combobox":         accessibility.RoleComboBox,
	"slider":           accessibility.RoleSlider,
	"option":           accessibility.RoleOption,
	"treeitem":         accessibility.RoleTreeItem,
	"menu":             accessibility.RoleMenu,
	"menubar":          accessibility.RoleMenuBar,
	"tablist":          accessibility.RoleTabList,
	"toolbar":          accessibility.RoleToolbar,
	"list":             accessibility.RoleList,
	"img":              accessibility.RoleImage,
	"navigation":       accessibility.RoleGroup,
	"group":            accessibility.RoleGroup,
	"dialog":           accessibility.RoleWindow,
}

var inputRoles = map[string]accessibility.Role{
	"checkbox": accessibility.RoleCheckbox,
	"radio":    accessibility.RoleRadio,
	"range":    accessibility.RoleSlider,
	"submit":   accessibility.RoleButton,
	"button":   accessibility.RoleButton,
	"reset":    accessibility.RoleButton,
	"image":    accessibility.RoleButton,
	"file":     accessibility.RoleButton,
	"color":    accessibility.RoleButton,
	"search":   accessibility.RoleSearchField,
}

// role maps an element to a control role. An explicit ARIA role wins; then
// the tag decides; elements with click handlers read as buttons.
func (info elementInfo) role() accessibility.Role {
	if r := strings.Fields(info.Role); len(r) > 0 {
		if role, ok := ariaRoles[r[0]]; ok {
			return role
		}
	}
	switch info.Tag {
	case "a":
		if info.Href {
			return accessibility.RoleLink
		}
	case "button":
		return accessibility.RoleButton
	case "input":
		if info.Type == "hidden" {
			return accessibility.RoleUnknown
		}
		if role, ok := inputRoles[info.Type]; ok {
			return role
		}
		return accessibility.RoleTextbox
	case "select":
		return accessibility.RoleComboBox
	case "textarea":
		return accessibility.RoleTextbox
	case "summary":
		return accessibility.RoleDisclosure
	case "option":
		return accessibility.RoleOption
	case "img":
		return accessibility.RoleImage
	case "ul", "ol":
		return accessibility.RoleList
	}
	if info.Clickable {
		return accessibility.RoleButton
	}
	return accessibility.RoleGroup
}

// actions lists what Perform accepts for the element.
func (info elementInfo) actions() []accessibility.Action {
	acts := []accessibility.Action{
		accessibility.ActionPress,
		accessibility.ActionShowMenu,
		accessibility.ActionFocus,
	}
	if info.Clickable {
		acts = append(acts, accessibility.ActionActivate)
	}
	return acts
}

// describeJS runs with the element as this.
const describeJS = `function () {
	const attr = (name) => (this.getAttribute(name) || '').trim();
	const tag = this.tagName.toLowerCase();
	const type = attr('type').toLowerCase();
	let title = attr('aria-label') || attr('title') || attr('alt') || attr('placeholder');
	if (!title && tag === 'input' && ['submit', 'button', 'reset'].includes(type)) title = this.value || '';
	if (!title) title = (this.innerText || this.textContent || '').trim();
	return {
		tag: tag,
		type: type,
		role: attr('role').toLowerCase(),
		title: title.replace(/\s+/g, ' ').slice(0, 80),
		href: this.hasAttribute('href'),
		disabled: !!this.disabled || attr('aria-disabled') === 'true',
		clickable: this.hasAttribute('onclick') || (this.hasAttribute('tabindex') && this.tabIndex >= 0),
	};
}`
