package harness

// instructionBody is the guidance injected between the markers. It is the
// single source for every Markdown-based harness.
const instructionBody = `When you complete a discrete unit of work (a feature, a bug fix, a
refactor), record it with:

    aw task "<short description of what was done>" --category <category>

Suggested categories (any string is accepted): feature, bugfix, refactor,
docs, test, chore.

Guidelines:
- Log one entry per completed task, right after finishing it.
- Keep descriptions specific: "Fixed race in session cleanup", not "fixes".
- Do not log partial or planned work.

Review recent work with ` + "`aw summary --days 7`" + `.`

// skillBody is the Markdown body of the claude skill file, placed after its
// front-matter.
const skillBody = `# Logging completed work

Record each discrete unit of completed work with the ` + "`aw`" + ` CLI:

    aw task "<short description>" --category <category>

Log exactly one entry per finished task. Suggested categories: feature,
bugfix, refactor, docs, test, chore — but any label is accepted.

Use ` + "`aw summary --days N`" + ` to review what was done recently.`

// skillDescription is the front-matter description of the claude skill.
const skillDescription = "Record completed units of work into the local aw work log"

// cursorRuleDescription is the front-matter description of the cursor rule.
const cursorRuleDescription = "Log completed work with the aw CLI"
