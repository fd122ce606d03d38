// Package blog is the content service: the operations on posts,
// categories and comments together with the rules they enforce.
//
// The service depends only on the repository interfaces declared in
// repository.go. It holds no mutable state of its own, so a single
// Service may be shared by any number of concurrent requests; atomicity
// of each write is delegated to the repository. Two concurrent updates to
// the same post race and the last write wins.
package blog
