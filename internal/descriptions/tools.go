package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	FormRestoreFileDescription = `Restore a production-test form from a printed PDF document.

**When to use:** An inspector re-uploads a previously printed test report and the form state embedded in it needs to be recovered.

**Why it's useful:** The printed report carries the entire form state in resilient textual encodings; this tool runs the full decode chain (checksummed marker, zero-width, legacy format) and reconciles the result against the current form schema, so documents saved by older or newer form revisions load cleanly.

**Examples:**
• Resume an interrupted inspection: "Restore breaker-4415.pdf and continue the checklist"
• Audit an old report: "Load the form data embedded in archive/2023-report.pdf"

**Failure modes:** "no embedded form data" means the document carries no recognizable payload (it may simply not be one of ours); "could not be read" means a payload was found but is corrupt. Neither affects any saved state.`

	FormSerializeStateDescription = `Produce the print-safe payloads for a form state.

**When to use:** A page is about to be printed and needs the marker footer text and the invisible zero-width span regenerated from the current state.

**Why it's useful:** Payloads are derived values, recomputed on every state change. The marker form carries a checksum and tolerates the whitespace reflow that print/extraction pipelines inject; the zero-width form survives print paths that drop the visible footer.

**Best practices:** Embed both payloads; restore tries the marker form first and only falls back when it is damaged.`

	FormRenderPrintDescription = `Render a form state as the printable PDF test report.

**When to use:** Producing the report artifact outside a browser, for example in a batch pipeline or from an archived state file.

**Why it's useful:** The output is the same round-trippable artifact the browser print path produces: the visible report plus the low-opacity marker footer, with compression disabled so the payload survives in the text layer.`

	FormValidateFileDescription = `Verify a PDF file is readable before attempting a restore.

**When to use:** Before restoring user-supplied uploads, especially in automated workflows.

**Why it's useful:** Rejects missing, oversized, misnamed or out-of-directory files early with a clear message instead of a mid-restore failure.`

	FormListDirectoryDescription = `List candidate form PDF documents in a directory.

**When to use:** Finding previously printed reports to restore, optionally filtered by a name fragment.

**Examples:**
• "List every PDF under the forms directory"
• "Find reports matching serial 4415"`

	FormServerInfoDescription = `Get server information, available tools and usage guidance.

**When to use:** First contact with the server, or when unsure which tool fits the task.`
)
