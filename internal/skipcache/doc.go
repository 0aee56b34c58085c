// Package skipcache persists the row indices an operator skipped, keyed by a
// session name, so interrupted labeling runs can resume without re-offering
// deferred rows. The cache lives in a single cache.json file that is
// rewritten after every mutation.
package skipcache
