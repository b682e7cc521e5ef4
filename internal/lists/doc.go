// package lists provides the persistence layer for named channel lists.
//
// A list is an ordered, named collection of channels saved out of the
// subscription dashboard. [Repository] handles CRUD for lists, membership
// toggling, and sequence generation against the embedded SQLite database.
package lists
