// Package orb extracts oriented binary local features from images and matches
// them by Hamming distance.
//
// Detection follows the ORB scheme: FAST-9 corners on a scale pyramid, ranked by
// Harris response, oriented by intensity centroid and described by a 256-bit
// rotated BRIEF test pattern on box-smoothed intensities. The test pattern is
// generated from a fixed seed, so descriptors are reproducible across runs and
// processes.
//
// Example:
//
//	d := orb.NewDetector(orb.DefaultOptions())
//	a := d.Detect(imgA)
//	b := d.Detect(imgB)
//	matches := orb.MatchCrossCheck(orb.Descriptors(a), orb.Descriptors(b))
package orb
