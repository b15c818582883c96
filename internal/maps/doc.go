// Package maps provides the radiative-transfer recursions.
//
// Each map implements [dynamo.Map], iterating an optical depth tau under a
// parameter vector [d, p2, p3, p4]:
//
//   - [Guillot]: two-stream solution with the (gamma - 1/gamma) coupling term
//   - [Pierrehumbert]: two-stream solution with the (1 - 1/gamma) coupling term
//
// Both share the optical-depth dependent opacity ratio
//
//	gamma(tau) = 10^(p3 * tanh(log10(tau) / p4))
//
// and the update tau' = d * exp(-p2 / T(tau)), where T is the temperature
// factor returned by [Temperature] or [GuillotTemperature].
//
// # Singular start
//
// At tau == 0 the logarithm diverges but gamma has a finite limit,
// 10^(-p3) for p4 > 0. [Gamma] evaluates that limit explicitly, so a
// trajectory may start at 0 and its first iterate equals p1 when d comes from
// [DeriveAmplitude].
package maps
