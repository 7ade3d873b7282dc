package server

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	// login
	s.mcp.AddTool(
		mcp.NewTool("login",
			mcp.WithDescription("Relaunch SAP Logon, open the configured system and sign in. Opens the configured number of parallel sessions."),
		),
		s.handleLogin,
	)

	// use
	s.mcp.AddTool(
		mcp.NewTool("use",
			mcp.WithDescription("Switch later tool calls to a parallel session (0 is the primary session)"),
			mcp.WithNumber("session", mcp.Description("Parallel session index"), mcp.Required()),
		),
		s.handleUse,
	)

	// read
	s.mcp.AddTool(
		mcp.NewTool("read",
			mcp.WithDescription("Read the object tree below a window or element. Returns every element id with its type code and text."),
			mcp.WithString("root", mcp.Description("Element id to read below (default: wnd[0])")),
			mcp.WithString("types", mcp.Description("Comma-separated type codes or groups (input, action), e.g. 'btn,ctxt'")),
			mcp.WithString("text", mcp.Description("Keep elements whose text contains this (case-insensitive)")),
			mcp.WithBoolean("prune", mcp.Description("Drop structural containers without text")),
		),
		s.handleRead,
	)

	// find
	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Find elements whose text contains a substring. Returns one id, a list of ids, or 'Not found'."),
			mcp.WithString("text", mcp.Description("Text to search for"), mcp.Required()),
			mcp.WithString("root", mcp.Description("Search below this id (default: wnd[0])")),
			mcp.WithBoolean("case-sensitive", mcp.Description("Match case exactly")),
		),
		s.stepHandler("find", false),
	)

	// get
	s.mcp.AddTool(
		mcp.NewTool("get",
			mcp.WithDescription("Get the text of one element or several elements"),
			mcp.WithString("id", mcp.Description("Element id, e.g. wnd[0]/usr/txtRSYST-BNAME")),
			mcp.WithArray("ids", mcp.Description("List of element ids"), mcp.WithStringItems()),
		),
		s.stepHandler("get", false),
	)

	// set
	s.mcp.AddTool(
		mcp.NewTool("set",
			mcp.WithDescription("Set the text of an element, or of several elements with 'values'"),
			mcp.WithString("id", mcp.Description("Element id")),
			mcp.WithString("label", mcp.Description("Find the element by text instead of id")),
			mcp.WithString("text", mcp.Description("Text to write")),
			mcp.WithObject("values", mcp.Description("Map of element id to text")),
		),
		s.stepHandler("set", true),
	)

	// click
	s.mcp.AddTool(
		mcp.NewTool("click",
			mcp.WithDescription("Press a button, or select a tab, menu entry, radio button or check box"),
			mcp.WithString("id", mcp.Description("Element id")),
			mcp.WithString("label", mcp.Description("Find the element by text instead of id")),
			mcp.WithString("root", mcp.Description("Search below this id when using label")),
		),
		s.stepHandler("click", true),
	)

	// close
	s.mcp.AddTool(
		mcp.NewTool("close",
			mcp.WithDescription("Close a window (default: wnd[1])"),
			mcp.WithString("id", mcp.Description("Window id")),
		),
		s.stepHandler("close", true),
	)

	// input
	s.mcp.AddTool(
		mcp.NewTool("input",
			mcp.WithDescription("Find the input field following a label in the active window, optionally writing text into it"),
			mcp.WithString("label", mcp.Description("Exact label text"), mcp.Required()),
			mcp.WithString("text", mcp.Description("Text to write")),
		),
		s.stepHandler("input", true),
	)

	// vkey
	s.mcp.AddTool(
		mcp.NewTool("vkey",
			mcp.WithDescription("Send a virtual key to a window: enter, back, execute, save, cancel, exit or a number"),
			mcp.WithString("key", mcp.Description("Key name or number (default: enter)")),
			mcp.WithString("window", mcp.Description("Window id (default: wnd[0])")),
		),
		s.stepHandler("vkey", true),
	)

	// tcode
	s.mcp.AddTool(
		mcp.NewTool("tcode",
			mcp.WithDescription("Start a transaction by code, e.g. ME2N"),
			mcp.WithString("code", mcp.Description("Transaction code"), mcp.Required()),
		),
		s.stepHandler("tcode", true),
	)

	// end
	s.mcp.AddTool(
		mcp.NewTool("end",
			mcp.WithDescription("End the current transaction"),
		),
		s.stepHandler("end", true),
	)

	// info
	s.mcp.AddTool(
		mcp.NewTool("info",
			mcp.WithDescription("Report system, client, user, program and transaction of the session"),
		),
		s.stepHandler("info", false),
	)

	// home
	s.mcp.AddTool(
		mcp.NewTool("home",
			mcp.WithDescription("Close popups and go back until the main menu is shown"),
		),
		s.stepHandler("home", true),
	)

	// export
	s.mcp.AddTool(
		mcp.NewTool("export",
			mcp.WithDescription("Export the current report to a spreadsheet file, replacing it if it exists"),
			mcp.WithString("file", mcp.Description("File name"), mcp.Required()),
			mcp.WithString("dir", mcp.Description("Target directory"), mcp.Required()),
		),
		s.stepHandler("export", true),
	)

	// wait
	s.mcp.AddTool(
		mcp.NewTool("wait",
			mcp.WithDescription("Wait until an element or window exists"),
			mcp.WithString("id", mcp.Description("Element id"), mcp.Required()),
			mcp.WithNumber("timeout", mcp.Description("Max seconds to wait (default: 30)")),
			mcp.WithNumber("interval", mcp.Description("Polling interval in ms (default: 500)")),
		),
		s.stepHandler("wait", false),
	)

	// screenshot
	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture an image of a window"),
			mcp.WithString("window", mcp.Description("Window id (default: wnd[0])")),
			mcp.WithString("format", mcp.Description("Image format: png, jpg (default: png)")),
			mcp.WithNumber("quality", mcp.Description("JPEG quality 1-100 (default: 80)")),
			mcp.WithNumber("scale", mcp.Description("Scale factor 0.1-1.0 (default: 0.5)")),
			mcp.WithBoolean("label", mcp.Description("Draw the window title across the top")),
		),
		s.handleScreenshot,
	)

	// run (batch)
	s.mcp.AddTool(
		mcp.NewTool("run",
			mcp.WithDescription("Execute several steps in order, each an object with one action key, e.g. {\"tcode\": {\"code\": \"ME2N\"}}. Supports: get, set, click, press, close, find, input, vkey, execute, tcode, end, info, validate, home, export, wait, sleep, use"),
			mcp.WithArray("steps", mcp.Description("Array of step objects"), mcp.Required()),
			mcp.WithBoolean("stop-on-error", mcp.Description("Stop on first error (default: true)")),
		),
		s.handleRun,
	)
}
