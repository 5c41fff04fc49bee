package browser

// clickInterceptorScript is installed as a context-level init script, before
// any page script runs. It patches EventTarget.prototype.addEventListener
// so every element that ever receives a click/mousedown/pointerdown/touch
// listener ends up in window.__bClickEls, framework-agnostic by
// construction since jQuery, React and vanilla code all funnel through
// addEventListener eventually.
const clickInterceptorScript = `(() => {
	const CLICK_TYPES = new Set([
		'click', 'mousedown', 'mouseup', 'pointerdown', 'pointerup',
		'tap', 'touchstart'
	]);
	const clickEls = new Set();
	window.__bClickEls = clickEls;
	const origAdd = EventTarget.prototype.addEventListener;
	EventTarget.prototype.addEventListener = function(type, listener, options) {
		if (CLICK_TYPES.has(type) && this && this.nodeType === 1) {
			clickEls.add(this);
		}
		return origAdd.call(this, type, listener, options);
	};
})();`

// prepareScriptTemplate runs the full DOM annotation pass: back-reference
// assignment, carousel-clone hiding, icon classification, switchable-group
// detection, hover-pointer CSS harvesting, jQuery delegated-handler
// probing, clickability propagation to list children, and gray
// placeholder-text detection.
//
// It is evaluated once per extraction against the live page with the
// config object passed as its only argument (see buildPrepareConfig). Per-element
// failures (a CORS-blocked stylesheet, a detached node, a malformed
// delegation selector) are individually try/catch-guarded so one bad probe
// never aborts the whole pass.
const prepareScriptTemplate = `(cfg) => {
	const PREFIX_RE = new RegExp('(?:' + cfg.prefixRe + ')-([a-zA-Z][\\w-]*)')
	const MATERIAL_RE = cfg.materialRe ? new RegExp(cfg.materialRe) : null
	const SEMANTIC = cfg.semantic
	const CLONE_SEL = cfg.cloneSel
	const STATE_RE = cfg.stateClasses.length
		? new RegExp('\\b(' + cfg.stateClasses.join('|') + ')\\b', 'gi')
		: null

	// ── Phase 1: mark carousel / framework clones hidden ──
	if (CLONE_SEL) {
		try {
			document.querySelectorAll(CLONE_SEL).forEach(el => {
				el.setAttribute('data-bhidden', '1')
			})
		} catch (e) {}
	}

	// ── Phase 1b: harvest cursor-pointer selectors (with any :hover
	// pseudo-class stripped, so hover rules match the element at rest)
	// from every reachable stylesheet, skipping CORS-blocked ones. ──
	const hoverSelectors = []
	for (const sheet of Array.from(document.styleSheets)) {
		let rules
		try { rules = sheet.cssRules } catch (e) { continue }
		if (!rules) continue
		for (const rule of Array.from(rules)) {
			try {
				if (rule.style && rule.style.cursor === 'pointer' && rule.selectorText) {
					hoverSelectors.push(rule.selectorText.replace(/:hover/g, ''))
				}
			} catch (e) {}
		}
	}
	const hoverEls = new Set()
	for (const sel of hoverSelectors) {
		try {
			document.querySelectorAll(sel).forEach(el => hoverEls.add(el))
		} catch (e) {}
	}

	// ── Phase 1c: jQuery delegated handler probing. jQuery's event
	// registry (jq._data(node, 'events')) is read on document, body and
	// every element under body; each click/mousedown/pointerdown
	// delegation selector is resolved with querySelectorAll and every
	// concrete match is marked clickable. Other frameworks' registries
	// are not probed. ──
	const clickEls = window.__bClickEls || new Set()
	function probeDelegation(root) {
		const jq = window.jQuery || window.$
		if (!jq) return
		try {
			const data = jq._data ? jq._data(root, 'events') : null
			if (!data) return
			for (const type of Object.keys(data)) {
				if (type !== 'click' && type !== 'mousedown' && type !== 'pointerdown') continue
				for (const handler of data[type]) {
					if (!handler.selector) continue
					try {
						document.querySelectorAll(handler.selector).forEach(el => clickEls.add(el))
					} catch (e) {}
				}
			}
		} catch (e) {}
	}
	try {
		probeDelegation(document)
		probeDelegation(document.body)
		document.body.querySelectorAll('*').forEach(el => probeDelegation(el))
	} catch (e) {}

	// ── Phase 2: assign back-reference ids, detect visibility, icons,
	// clickability, gray placeholder text. ──
	let c = 0
	document.body.querySelectorAll('*').forEach(el => {
		el.setAttribute('data-bid', String(++c))
		if (el.getAttribute('data-bhidden') !== '1') el.removeAttribute('data-bhidden')
		el.removeAttribute('data-bicon')
		el.removeAttribute('data-bgroup')
		el.removeAttribute('data-bclick')
		el.removeAttribute('data-bgraytext')

		if (clickEls.has(el) || hoverEls.has(el)) {
			el.setAttribute('data-bclick', '1')
		}

		if (el.getAttribute('data-bhidden') === '1') return

		let cs
		try { cs = window.getComputedStyle(el) } catch (e) { return }
		if (!cs) return
		if (cs.display === 'none' || cs.visibility === 'hidden' || cs.opacity === '0') {
			el.setAttribute('data-bhidden', '1')
			return
		}
		let rect
		try { rect = el.getBoundingClientRect() } catch (e) { rect = null }
		if (rect && rect.width === 0 && rect.height === 0 && el.children.length === 0) {
			el.setAttribute('data-bhidden', '1')
			return
		}

		// gray-placeholder-emulation detection: a text input whose computed
		// foreground color is a light/medium gray is usually simulating a
		// placeholder with a real "value" rather than showing typed text.
		const tag = el.tagName.toLowerCase()
		if ((tag === 'input' || tag === 'textarea') && el.value) {
			try {
				const m = cs.color.match(/rgba?\((\d+),\s*(\d+),\s*(\d+)/)
				if (m) {
					const r = +m[1], g = +m[2], b = +m[3]
					const maxC = Math.max(r, g, b), minC = Math.min(r, g, b)
					if (minC >= cfg.grayTextMinRgb && (maxC - minC) <= cfg.grayTextMaxDiff) {
						el.setAttribute('data-bgraytext', '1')
					}
				}
			} catch (e) {}
		}

		// icon detection (only for elements without visible text)
		const text = (el.innerText || '').trim()
		const ariaLabel = el.getAttribute('aria-label')
		if (text || ariaLabel) return

		let icon = ''
		const cls = typeof el.className === 'string' ? el.className : ''
		const cm = cls.match(PREFIX_RE)
		if (cm) icon = cm[1]
		if (!icon && MATERIAL_RE && MATERIAL_RE.test(cls)) {
			const t = el.textContent?.trim()
			if (t && t.length < 40) icon = t
		}
		if (!icon) {
			const use = el.querySelector('svg use[href], svg use')
			if (use) {
				const href = use.getAttribute('href') || use.getAttributeNS('http://www.w3.org/1999/xlink', 'href') || ''
				const m = href.match(/#(?:icon[_-]?)?(.+)/)
				if (m) icon = m[1]
			}
		}
		if (!icon) {
			const svgTitle = el.querySelector('svg > title')
			if (svgTitle && svgTitle.textContent) icon = svgTitle.textContent.trim()
		}
		if (!icon) {
			const INTERACTIVE = new Set(['a', 'button', 'input', 'select', 'textarea'])
			const interactive = INTERACTIVE.has(tag)
				|| el.getAttribute('role') === 'button'
				|| el.getAttribute('role') === 'link'
			const maxLevels = interactive ? 4 : 1
			if (!window._semRe) {
				window._semRe = SEMANTIC.map(w => new RegExp('(?:^|[\\s_-])' + w + '(?:$|[\\s_-])'))
			}
			let node = el
			for (let i = 0; i < maxLevels && node && node !== document.body; i++) {
				const nc = typeof node.className === 'string' ? node.className.toLowerCase() : ''
				if (nc) {
					for (let j = 0; j < SEMANTIC.length; j++) {
						if (window._semRe[j].test(nc)) { icon = SEMANTIC[j]; break }
					}
				}
				if (icon) break
				node = node.parentElement
			}
		}
		if (icon) el.setAttribute('data-bicon', icon)
	})

	// ── Phase 3: switchable sibling groups (tab panels, dropdowns) ──
	if (STATE_RE) {
		const seen = new Set()
		document.querySelectorAll('[data-bhidden="1"]').forEach(el => {
			const parent = el.parentElement
			if (!parent || seen.has(parent)) return
			seen.add(parent)
			const children = Array.from(parent.children).filter(ch => ch.hasAttribute('data-bid'))
			if (children.length < 2) return
			const groups = new Map()
			children.forEach(child => {
				const ncls = (child.getAttribute('class') || '')
					.replace(STATE_RE, '').replace(/\s+/g, ' ').trim()
				const key = child.tagName + '|' + ncls
				if (!groups.has(key)) groups.set(key, [])
				groups.get(key).push(child)
			})
			groups.forEach((members, key) => {
				if (members.length < 2) return
				if (key.endsWith('|')) return
				const hidden = members.filter(m => m.getAttribute('data-bhidden') === '1')
				const vis = members.filter(m => m.getAttribute('data-bhidden') !== '1')
				if (vis.length > 0 && hidden.length > 0) {
					vis.forEach(m => m.setAttribute('data-bgroup', 'active'))
					hidden.forEach(m => {
						m.removeAttribute('data-bhidden')
						m.setAttribute('data-bgroup', 'inactive')
						m.querySelectorAll('[data-bhidden]').forEach(d => d.removeAttribute('data-bhidden'))
					})
				}
			})
		})
	}

	// ── Phase 4: propagate clickability from list-container parents to
	// visible, non-empty, non-semantic block children. ──
	const SEMANTIC_TAGS = new Set(['a', 'button', 'input', 'script', 'style'])
	document.querySelectorAll('[data-bclick="1"]').forEach(parent => {
		const kids = Array.from(parent.children).filter(ch => {
			if (SEMANTIC_TAGS.has(ch.tagName.toLowerCase())) return false
			if (ch.getAttribute('data-bhidden') === '1') return false
			if (!(ch.innerText || '').trim()) return false
			return true
		})
		if (kids.length >= 2) {
			kids.forEach(ch => ch.setAttribute('data-bclick', '1'))
		}
	})
}`
