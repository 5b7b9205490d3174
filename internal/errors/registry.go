package errors

import (
	"sort"
	"sync"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://vango.dev/widgets/errors/"

var (
	registryMu sync.RWMutex

	// registry maps error codes to their templates.
	registry = map[string]ErrorTemplate{
		// ============================================
		// Element Errors (W001-W099)
		// ============================================

		"W001": {
			Category: CategoryElement,
			Message:  "Invalid element wrapper",
			Detail:   "The wrapper does not reference an element. It was created from an unsupported value or a lookup missed.",
			DocURL:   docBase + "W001",
		},
		"W002": {
			Category: CategoryElement,
			Message:  "Insert failed, no parent",
			Detail:   "Neither element is attached to a parent, so a sibling position cannot be established.",
			DocURL:   docBase + "W002",
		},
		"W003": {
			Category: CategoryElement,
			Message:  "Invalid insert position",
			Detail:   "Position must be one of beforebegin, afterbegin, beforeend or afterend.",
			DocURL:   docBase + "W003",
		},
		"W004": {
			Category: CategoryElement,
			Message:  "Hierarchy request error",
			Detail:   "An element cannot be inserted into itself or one of its descendants.",
			DocURL:   docBase + "W004",
		},
		"W005": {
			Category: CategoryElement,
			Message:  "Invalid selector",
			Detail:   "The CSS selector could not be parsed.",
			DocURL:   docBase + "W005",
		},
		"W006": {
			Category: CategoryElement,
			Message:  "Invalid HTML fragment",
			Detail:   "The markup could not be parsed in the context of the element.",
			DocURL:   docBase + "W006",
		},

		// ============================================
		// Request Errors (R001-R099)
		// ============================================

		"R001": {
			Category: CategoryRequest,
			Message:  "Need url",
			Detail:   "A request needs a target URL, either as a string or in the options.",
			DocURL:   docBase + "R001",
		},
		"R002": {
			Category: CategoryRequest,
			Message:  "Unsupported request parameters",
			Detail:   "Parameters must be a map, url.Values or *FormData.",
			DocURL:   docBase + "R002",
		},
		"R003": {
			Category: CategoryRequest,
			Message:  "Unsupported request target",
			Detail:   "The target must be a URL string or request options.",
			DocURL:   docBase + "R003",
		},

		// ============================================
		// Script Errors (S001-S099)
		// ============================================

		"S001": {
			Category: CategoryScript,
			Message:  "Script load failed",
			DocURL:   docBase + "S001",
		},
		"S002": {
			Category: CategoryScript,
			Message:  "Unsupported script URL scheme",
			Detail:   "Scripts can be loaded over http, https or s3.",
			DocURL:   docBase + "S002",
		},

		// ============================================
		// Page Errors (P001-P099)
		// ============================================

		"P001": {
			Category: CategoryPage,
			Message:  "No sheet",
			Detail:   "The frame has no sheet to hold pages.",
			DocURL:   docBase + "P001",
		},
		"P002": {
			Category: CategoryPage,
			Message:  "Page undefined",
			Detail:   "No page is registered under this id.",
			DocURL:   docBase + "P002",
		},
		"P003": {
			Category: CategoryPage,
			Message:  "Registered element is not a page",
			DocURL:   docBase + "P003",
		},

		// ============================================
		// Config Errors (C001-C099)
		// ============================================

		"C001": {
			Category: CategoryConfig,
			Message:  "Invalid configuration file",
			DocURL:   docBase + "C001",
		},
		"C002": {
			Category: CategoryConfig,
			Message:  "Configuration not found",
			Detail:   "No widgets.json or widgets.yaml was found in the directory or its parents.",
			DocURL:   docBase + "C002",
		},
		"C003": {
			Category: CategoryConfig,
			Message:  "Invalid configuration value",
			DocURL:   docBase + "C003",
		},

		// ============================================
		// CLI Errors (X001-X099)
		// ============================================

		"X001": {
			Category: CategoryCLI,
			Message:  "Invalid arguments",
			DocURL:   docBase + "X001",
		},
		"X002": {
			Category: CategoryCLI,
			Message:  "Input not readable",
			DocURL:   docBase + "X002",
		},
	}
)

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[code] = template
}
