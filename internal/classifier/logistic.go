// Package classifier обучает бинарную логистическую регрессию с L2-регуляризацией.
//
// Целевая функция: C * sum(logloss) + 0.5 * ||w||^2, свободный член не штрафуется.
// Решается методом Ньютона (IRLS) с дроблением шага.
package classifier

import (
	"errors"
	"fmt"
	"math"
	"time"

	"cod-fraud-system/internal/features"
	"cod-fraud-system/internal/models"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyDataset     = errors.New("training dataset is empty")
	ErrDegenerateLabels = errors.New("training labels contain a single class")
	ErrNotConverged     = errors.New("logistic regression solver did not converge")
)

// Options параметры обучения
type Options struct {
	C             float64
	MaxIterations int
	Tolerance     float64
}

// DefaultOptions совпадают с настройками по умолчанию sklearn LogisticRegression
func DefaultOptions() Options {
	return Options{
		C:             1.0,
		MaxIterations: 100,
		Tolerance:     1e-8,
	}
}

// LogisticModel обученная модель. Неизменяема, безопасна для конкурентного чтения.
type LogisticModel struct {
	weights    features.Vector
	intercept  float64
	iterations int
	rows       int
	accuracy   float64
	trainedAt  time.Time
}

// Train обучает модель с параметрами по умолчанию
func Train(dataset *models.Dataset) (*LogisticModel, error) {
	return TrainWithOptions(dataset, DefaultOptions())
}

// TrainWithOptions обучает модель на эталонных колонках набора данных
func TrainWithOptions(dataset *models.Dataset, opts Options) (*LogisticModel, error) {
	if dataset.Len() == 0 {
		return nil, ErrEmptyDataset
	}

	n := dataset.Len()
	x := make([]features.Vector, n)
	y := make([]float64, n)
	positives := 0
	for i, row := range dataset.Rows {
		x[i] = features.FromLabeledOrder(row)
		y[i] = float64(row.FraudLabel)
		positives += row.FraudLabel
	}
	if positives == 0 || positives == n {
		return nil, fmt.Errorf("%w: %d of %d rows positive", ErrDegenerateLabels, positives, n)
	}

	s := newSolver(x, y, opts)
	iterations, err := s.run()
	if err != nil {
		return nil, err
	}

	m := &LogisticModel{
		intercept:  s.theta[features.Size],
		iterations: iterations,
		rows:       n,
		trainedAt:  time.Now(),
	}
	copy(m.weights[:], s.theta[:features.Size])
	m.accuracy = m.score(x, y)

	return m, nil
}

// PredictProba вероятность положительного класса
func (m *LogisticModel) PredictProba(v features.Vector) float64 {
	return sigmoid(floats.Dot(m.weights[:], v[:]) + m.intercept)
}

// Predict метка класса с порогом 0.5
func (m *LogisticModel) Predict(v features.Vector) int {
	if m.PredictProba(v) > 0.5 {
		return 1
	}
	return 0
}

func (m *LogisticModel) Coefficients() features.Vector {
	return m.weights
}

func (m *LogisticModel) Intercept() float64 {
	return m.intercept
}

func (m *LogisticModel) Iterations() int {
	return m.iterations
}

// Summary описание модели для API
func (m *LogisticModel) Summary() models.ModelSummary {
	return models.ModelSummary{
		Features:         append([]string(nil), features.Names[:]...),
		Coefficients:     append([]float64(nil), m.weights[:]...),
		Intercept:        m.intercept,
		Iterations:       m.iterations,
		TrainingRows:     m.rows,
		TrainingAccuracy: m.accuracy,
		TrainedAt:        m.trainedAt,
	}
}

func (m *LogisticModel) score(x []features.Vector, y []float64) float64 {
	correct := 0
	for i := range x {
		if float64(m.Predict(x[i])) == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(x))
}

// solver хранит веса и свободный член в одном векторе, свободный член последний
type solver struct {
	x     []features.Vector
	y     []float64
	opts  Options
	theta []float64
	dim   int
}

func newSolver(x []features.Vector, y []float64, opts Options) *solver {
	dim := features.Size + 1
	return &solver{
		x:     x,
		y:     y,
		opts:  opts,
		theta: make([]float64, dim),
		dim:   dim,
	}
}

func (s *solver) row(i int) []float64 {
	r := make([]float64, s.dim)
	copy(r, s.x[i][:])
	r[features.Size] = 1
	return r
}

func (s *solver) objective(theta []float64) float64 {
	loss := 0.0
	for i := range s.x {
		z := floats.Dot(theta, s.row(i))
		loss += logOnePlusExp(z) - s.y[i]*z
	}
	reg := floats.Dot(theta[:features.Size], theta[:features.Size])
	return s.opts.C*loss + 0.5*reg
}

// gradientAndHessian градиент и гессиан целевой функции в точке theta
func (s *solver) gradientAndHessian() ([]float64, *mat.SymDense) {
	grad := make([]float64, s.dim)
	hess := mat.NewSymDense(s.dim, nil)

	for i := range s.x {
		r := s.row(i)
		p := sigmoid(floats.Dot(s.theta, r))
		floats.AddScaled(grad, s.opts.C*(p-s.y[i]), r)

		w := s.opts.C * p * (1 - p)
		for a := 0; a < s.dim; a++ {
			for b := a; b < s.dim; b++ {
				hess.SetSym(a, b, hess.At(a, b)+w*r[a]*r[b])
			}
		}
	}

	for j := 0; j < features.Size; j++ {
		grad[j] += s.theta[j]
		hess.SetSym(j, j, hess.At(j, j)+1)
	}
	return grad, hess
}

func (s *solver) run() (int, error) {
	current := s.objective(s.theta)

	for iter := 1; iter <= s.opts.MaxIterations; iter++ {
		grad, hess := s.gradientAndHessian()
		if floats.Norm(grad, math.Inf(1)) < s.opts.Tolerance {
			return iter - 1, nil
		}

		var chol mat.Cholesky
		if ok := chol.Factorize(hess); !ok {
			return iter, fmt.Errorf("%w: hessian is not positive definite", ErrNotConverged)
		}
		var step mat.VecDense
		if err := chol.SolveVecTo(&step, mat.NewVecDense(s.dim, grad)); err != nil {
			return iter, fmt.Errorf("%w: %v", ErrNotConverged, err)
		}

		// Дробление шага до уменьшения целевой функции
		t := 1.0
		next := make([]float64, s.dim)
		accepted := false
		for k := 0; k < 30; k++ {
			for j := range next {
				next[j] = s.theta[j] - t*step.AtVec(j)
			}
			value := s.objective(next)
			if value <= current {
				copy(s.theta, next)
				accepted = value < current
				current = value
				break
			}
			t /= 2
		}
		if !accepted {
			// Шаг больше не уменьшает функцию: минимум достигнут с машинной точностью
			return iter, nil
		}
	}

	return s.opts.MaxIterations, fmt.Errorf("%w: %d iterations", ErrNotConverged, s.opts.MaxIterations)
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// logOnePlusExp устойчивое log(1 + e^z)
func logOnePlusExp(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}
