// Package feed keeps the video list on screen fresh. A Controller refetches
// videos and categories on a fixed interval and on every filter change, runs
// them through Apply and publishes the resulting View.
//
// Each pass is numbered. A pass whose result arrives after a newer pass has
// already been applied is dropped, so the view never goes backwards.
package feed
