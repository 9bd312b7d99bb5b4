package mcpserver

// MemoContract describes the memo semantics LLM consumers must follow when
// reading or writing memos through the MCP tools.
const MemoContract = `# Naudiz Memo Contract

Naudiz attaches free-text memos to a tag (a word or phrase) within the scope
of a document.

## Model

- A **document** is a canonical identity, usually a file path. Several raw
  paths may resolve to the same document through the identity mapping.
- A **group** holds the memos for one primary tag within one document.
  Tags are compared case-insensitively and with surrounding whitespace
  trimmed; "Foo" and " foo " address the same group.
- An **alias** is an alternate tag resolving to an existing group. An alias
  must be unique across all tags and aliases within its document.
- A **note** is one piece of free text. Notes are ordered by creation time;
  delete operations address them by 1-based position in that order.
- A group enters **multi-note mode** automatically when a second note is
  added and leaves it when at most one note remains.

## Rules

1. Pass the document as a raw locator (file path) via the ` + "`locator`" + `
   argument. Omitting it targets the cross-document global scope.
2. Tags and aliases must be non-empty after trimming whitespace.
3. Adding an alias fails when the name is already taken anywhere in the
   document; pick a different alias instead of retrying.
4. Deleting the last note leaves the group eligible for purge; it will no
   longer appear in listings.
5. Export writes a JSON file and returns its path; pass an explicit ` + "`path`" + `
   only when the user asked for a specific destination.
`
