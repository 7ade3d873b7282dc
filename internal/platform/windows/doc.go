//go:build windows

// Package windows drives the SAP GUI Scripting API over COM. The scripting
// engine is reached through the SAP running-object-table wrapper, and every
// COM call runs on one apartment thread.
package windows
