package crawler

// frontier is the breadth-first crawl queue. URLs come out in the exact
// order they were first discovered. A URL is enqueued at most once per
// crawl: failed fetches are not retried, and visited pages are never
// re-queued.
type frontier struct {
	queue   []string
	seen    map[string]struct{} // Every URL ever enqueued
	visited map[string]struct{} // Successfully fetched and parsed pages
}

func newFrontier(rootURL string) *frontier {
	f := &frontier{
		seen:    make(map[string]struct{}),
		visited: make(map[string]struct{}),
	}
	f.push(rootURL)
	return f
}

// push enqueues a normalized URL unless it has been seen before
func (f *frontier) push(u string) {
	if _, ok := f.seen[u]; ok {
		return
	}
	f.seen[u] = struct{}{}
	f.queue = append(f.queue, u)
}

// pop removes the oldest queued URL. The second return is false when the
// frontier is exhausted.
func (f *frontier) pop() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	u := f.queue[0]
	f.queue = f.queue[1:]
	return u, true
}

func (f *frontier) markVisited(u string) {
	f.visited[u] = struct{}{}
}

func (f *frontier) visitedCount() int {
	return len(f.visited)
}

func (f *frontier) empty() bool {
	return len(f.queue) == 0
}
