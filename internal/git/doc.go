// Package git provides git operations via shell commands.
//
// All operations use [os/exec.Command] to call the git CLI directly rather
// than using Go git libraries. This approach is simpler, more reliable, and
// ensures compatibility with user configurations (SSH keys, credential
// helpers, aliases).
//
// # Sync Operations
//
// The operations backing the artifact sync pipeline:
//
//   - [FetchRef]: Fetch a branch from an upstream URL into FETCH_HEAD
//   - [CheckoutFileFromFetchHead]: Extract a single path from the fetched tree
//   - [StageFile], [StagedFileChanged]: Stage artifacts and detect changes
//     against the index
//   - [Commit]: Commit staged changes with an explicit author identity
//   - [Push]: Push the current branch to origin
//
// # Repository Queries
//
//   - [CurrentBranch], [HeadHash], [OriginURL]: repository state
//   - [AheadCount]: commits not yet pushed to origin
//   - [DiffStatCached]: diffstat summary for structured commit messages
package git
