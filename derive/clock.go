package derive

import "time"

// timeNow is swapped in tests that need a fixed present.
var timeNow = time.Now
