// Package services provides the stateless domain services of the return fraud
// check.
//
// The package includes:
//   - SimilarityScorer: compares a returned item image with the order's reference image
//   - RiskClassifier: turns a similarity into a risk score, a Decision and a Severity
//
// Both services are configured once through their constructors and are safe for
// concurrent use.
package services
