package walker

import (
	"strconv"
	"strings"

	"github.com/clawome/clawome/internal/config"
	"github.com/clawome/clawome/internal/domutil"
	"golang.org/x/net/html"
)

var clickableRoles = map[string]bool{
	"button": true, "link": true, "checkbox": true, "radio": true,
	"switch": true, "tab": true, "menuitem": true, "option": true, "treeitem": true,
}

// detectActions classifies an element's available actions from a tag/role/
// type table, plus the onclick attribute, computed hover-pointer cursor,
// and the clickable flag Prepare wrote as data-bclick — none of which a
// static parse can see on its own, which is why Prepare mirrors them into
// attributes before Walk ever runs.
func detectActions(n *html.Node, cfg *config.Config) []string {
	tag := n.Data
	role, _ := domutil.Attr(n, "role")
	inputType := strings.ToLower(domutil.AttrOr(n, "type", "text"))

	if tag == "a" || role == "link" {
		return []string{"click"}
	}
	if tag == "button" || role == "button" {
		return []string{"click"}
	}
	if domutil.HasAttr(n, "contenteditable") {
		v, _ := domutil.Attr(n, "contenteditable")
		if v != "false" {
			return []string{"type"}
		}
	}
	if tag == "input" {
		disabled := domutil.HasAttr(n, "disabled")
		readonly := domutil.HasAttr(n, "readonly")
		if cfg.ClickableInputTypes[inputType] {
			return []string{"click"}
		}
		if inputType == "checkbox" || inputType == "radio" {
			return []string{"click"}
		}
		if cfg.TypeableInputTypes[inputType] {
			if disabled || readonly {
				return []string{"click"}
			}
			return []string{"type"}
		}
		return nil
	}
	if tag == "textarea" || role == "combobox" {
		if domutil.HasAttr(n, "disabled") || domutil.HasAttr(n, "readonly") {
			return []string{"click"}
		}
		return []string{"type"}
	}
	if tag == "select" {
		return []string{"select"}
	}
	if clickableRoles[role] {
		return []string{"click"}
	}
	if domutil.HasAttr(n, "onclick") {
		return []string{"click"}
	}
	if v, ok := domutil.Attr(n, "data-bclick"); ok && v == "1" {
		return []string{"click"}
	}
	return nil
}

// detectState collects an element's state attributes, including the
// switchable-group selected/hidden markers and the gray-text→placeholder
// reclassification driven by the data-bgraytext annotation Prepare writes.
func detectState(n *html.Node, cfg *config.Config) map[string]string {
	state := map[string]string{}
	for _, attr := range cfg.StateAttrs {
		if v, ok := domutil.Attr(n, attr); ok {
			if v == "" {
				state[attr] = "true"
			} else {
				state[attr] = v
			}
		}
	}
	switch n.Data {
	case "input", "textarea", "select":
		if v, ok := domutil.Attr(n, "value"); ok {
			isGray := false
			if g, ok := domutil.Attr(n, "data-bgraytext"); ok && g == "1" {
				isGray = true
			}
			trimmed := domutil.Truncate(v, 80)
			if isGray {
				state["placeholder"] = trimmed
			} else if v != "" {
				state["value"] = trimmed
			}
		}
	}
	if grp, ok := domutil.Attr(n, "data-bgroup"); ok {
		switch grp {
		case "active":
			state["selected"] = "true"
		case "inactive":
			state["hidden"] = "true"
		}
	}
	return state
}

// label picks the best human-readable label for n by a fixed precedence.
func label(n *html.Node, text string) string {
	if text != "" {
		return text
	}
	if v, ok := domutil.Attr(n, "aria-label"); ok && v != "" {
		return v
	}
	if v, ok := domutil.Attr(n, "title"); ok && v != "" {
		return v
	}
	if icon, ok := domutil.Attr(n, "data-bicon"); ok && icon != "" {
		return "[icon: " + icon + "]"
	}
	if v, ok := domutil.Attr(n, "placeholder"); ok && v != "" {
		return v
	}
	if v, ok := domutil.Attr(n, "alt"); ok && v != "" {
		return v
	}
	if v, ok := domutil.Attr(n, "value"); ok && v != "" {
		return v
	}
	return ""
}

// fmtAttrs renders the ATTRS portion of a node line: globalAttrs plus the
// per-tag attrRules, with href/src treated as bare flags or
// filename-shortened, and long values elided at 80 chars.
func fmtAttrs(n *html.Node, cfg *config.Config) string {
	keys := append([]string{}, cfg.GlobalAttrs...)
	keys = append(keys, cfg.AttrRules[n.Data]...)

	seen := map[string]bool{}
	var pairs []string
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		v, ok := domutil.Attr(n, k)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		switch k {
		case "href":
			pairs = append(pairs, "href")
		case "src":
			if !strings.HasPrefix(v, "data:") {
				if fname := tailFilename(v); fname != "" && len(fname) <= 80 {
					pairs = append(pairs, `src="`+fname+`"`)
					continue
				}
			}
			pairs = append(pairs, "src")
		case "action":
			path := v
			if i := strings.IndexByte(path, '?'); i >= 0 {
				path = path[:i]
			}
			if len(path) > 60 {
				path = string([]rune(path)[:60]) + "…"
			}
			pairs = append(pairs, `action="`+path+`"`)
		default:
			pairs = append(pairs, k+`="`+domutil.Truncate(v, 80)+`"`)
		}
	}
	return strings.Join(pairs, ", ")
}

func tailFilename(url string) string {
	u := url
	for _, sep := range []byte{'?', '#'} {
		if i := strings.IndexByte(u, sep); i >= 0 {
			u = u[:i]
		}
	}
	if i := strings.LastIndexByte(u, '/'); i >= 0 {
		u = u[i+1:]
	}
	return u
}

// imgName extracts the basename-without-extension from a media src, used
// as a derived icon/image name for img/video/audio/source labels.
func imgName(n *html.Node) string {
	if n.Data != "img" && n.Data != "video" && n.Data != "audio" && n.Data != "source" {
		return ""
	}
	src, ok := domutil.Attr(n, "src")
	if !ok || src == "" || strings.HasPrefix(src, "data:") {
		return ""
	}
	fname := tailFilename(src)
	if i := strings.LastIndexByte(fname, '.'); i >= 0 {
		return fname[:i]
	}
	return fname
}

// backRef returns the back-reference identifier Prepare assigned, used as
// Node.Idx, or -1 if the element carries no data-bid (the same value nodes
// synthesized after Walk, e.g. the list-truncation marker, carry).
func backRef(n *html.Node) int {
	v, ok := domutil.Attr(n, "data-bid")
	if !ok {
		return -1
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return i
}
