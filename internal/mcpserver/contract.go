package mcpserver

// DocFormatContract describes the canonical Markdown document format that
// LLM consumers should follow when writing memory bank documents.
const DocFormatContract = `# Membank Document Format Contract

Every Markdown document stored in the memory bank SHOULD follow this structure.

## Structure

` + "```" + `markdown
# Human-readable title

tags: [topic-one, topic-two]

One-paragraph summary of the document. The indexer stores the first
non-heading line (truncated to 200 characters) as the document summary.

## Further sections

Standard Markdown body.
` + "```" + `

## Rules

1. **The first level-1 heading is the title.** Without one, the filename
   stem is used instead.
2. **The tags line is optional.** When present it must be a single line of
   the form ` + "`" + `tags: [a, b, c]` + "`" + `; tags are lowercase, kebab-case.
3. **The first plain line is the summary.** Put the most useful one-sentence
   description of the document right after the title (and tags line).
4. **Categories are directories.** A document's category is its top-level
   directory (e.g. ` + "`" + `core/projectbrief.md` + "`" + ` is in ` + "`" + `core` + "`" + `).
5. **File paths** end with ` + "`" + `.md` + "`" + ` and use forward slashes.
6. **Encoding** is UTF-8 with a trailing newline.
7. **Hidden entries are ignored.** Files and directories starting with ` + "`" + `.` + "`" + `
   are never indexed, searched, or browsed.

## Example

` + "```" + `markdown
# Payment Service Brief

tags: [core, payments]

Why the payment service exists and the constraints it operates under.

## Goals

- Process card payments with sub-second latency.
- Stay PCI-DSS compliant.
` + "```" + `
`
