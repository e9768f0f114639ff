package usecase

import (
	"context"
	"fmt"

	"housing-price-service/internal/contextkeys"
	"housing-price-service/internal/core/domain"
	"housing-price-service/internal/core/port"
	"housing-price-service/internal/ml"
)

// Training hyperparameters. The seed fixes both the train/test split and
// the per-tree bootstrap sampling, so a run over the same data always
// produces the same model.
const (
	nEstimators = 100
	randomSeed  = 42
	testRatio   = 0.2
)

// TrainModelUseCase fits the full preprocessing+forest pipeline on a
// historical sales file, evaluates it on a held-out slice and persists the
// three artifacts. Any read or fit failure aborts the run.
type TrainModelUseCase struct {
	dataset   port.SalesDatasetPort
	artifacts port.ModelArtifactsPort
}

func NewTrainModelUseCase(dataset port.SalesDatasetPort, artifacts port.ModelArtifactsPort) *TrainModelUseCase {
	return &TrainModelUseCase{dataset: dataset, artifacts: artifacts}
}

func (uc *TrainModelUseCase) Execute(ctx context.Context, dataPath string) (domain.EvaluationReport, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "TrainModel"})

	records, err := uc.dataset.Load(ctx, dataPath)
	if err != nil {
		return domain.EvaluationReport{}, fmt.Errorf("load training data: %w", err)
	}
	logger.Info("Training data loaded", port.Fields{"rows": len(records), "path": dataPath})

	frame, prices := frameFromRecords(records)

	// Dataset-level fills happen before the split, matching the behavior
	// the persisted artifacts have always had: building area and land size
	// take the full-set median, missing parking counts mean no garage.
	if err := frame.FillMedian(domain.ColSquareFootage); err != nil {
		return domain.EvaluationReport{}, err
	}
	if err := frame.FillMedian(domain.ColLotSize); err != nil {
		return domain.EvaluationReport{}, err
	}
	if err := frame.FillConstant(domain.ColGarage, 0); err != nil {
		return domain.EvaluationReport{}, err
	}

	// Vocabularies come from the full dataset, not the train slice.
	neighborhoods := frame.Distinct(domain.ColNeighborhood)
	propertyTypes := frame.Distinct(domain.ColPropertyType)

	trainIdx, testIdx := ml.SplitIndices(frame.N, testRatio, randomSeed)
	trainFrame := frame.Subset(trainIdx)
	testFrame := frame.Subset(testIdx)
	yTrain := subsetFloats(prices, trainIdx)
	yTest := subsetFloats(prices, testIdx)

	pipeline := ml.NewPipeline(
		ml.NewFeatureEncoder(domain.NumericFeatureColumns, domain.CategoricalFeatureColumns),
		ml.NewRandomForestRegressor(
			ml.WithNEstimators(nEstimators),
			ml.WithRandomState(randomSeed),
		),
	)

	logger.Info("Fitting pipeline", port.Fields{
		"train_rows": trainFrame.N,
		"test_rows":  testFrame.N,
		"trees":      nEstimators,
	})
	if err := pipeline.Fit(trainFrame, yTrain); err != nil {
		return domain.EvaluationReport{}, fmt.Errorf("fit pipeline: %w", err)
	}

	predictions, err := pipeline.PredictFrame(testFrame)
	if err != nil {
		return domain.EvaluationReport{}, fmt.Errorf("evaluate pipeline: %w", err)
	}

	report := domain.EvaluationReport{
		RMSE:          ml.RMSE(yTest, predictions),
		R2:            ml.R2(yTest, predictions),
		TrainRows:     trainFrame.N,
		TestRows:      testFrame.N,
		Neighborhoods: len(neighborhoods),
		PropertyTypes: len(propertyTypes),
	}

	if err := uc.artifacts.SavePipeline(pipeline); err != nil {
		return domain.EvaluationReport{}, fmt.Errorf("persist pipeline: %w", err)
	}
	if err := uc.artifacts.SaveNeighborhoods(neighborhoods); err != nil {
		return domain.EvaluationReport{}, fmt.Errorf("persist neighborhoods: %w", err)
	}
	if err := uc.artifacts.SavePropertyTypes(propertyTypes); err != nil {
		return domain.EvaluationReport{}, fmt.Errorf("persist property types: %w", err)
	}

	logger.Info("Training run finished", port.Fields{
		"rmse": report.RMSE,
		"r2":   report.R2,
	})
	return report, nil
}

// frameFromRecords builds the column-oriented training frame and the target
// vector out of the loaded sales records.
func frameFromRecords(records []domain.SalesRecord) (*ml.Frame, []float64) {
	frame := ml.NewFrame(domain.NumericFeatureColumns, domain.CategoricalFeatureColumns, len(records))
	prices := make([]float64, len(records))
	for i, rec := range records {
		num := rec.NumericFeatures()
		for _, c := range domain.NumericFeatureColumns {
			frame.Numeric[c][i] = num[c]
		}
		cat := rec.CategoricalFeatures()
		for _, c := range domain.CategoricalFeatureColumns {
			frame.Categorical[c][i] = cat[c]
		}
		prices[i] = rec.Price
	}
	return frame, prices
}

func subsetFloats(vals []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, ii := range idx {
		out[i] = vals[ii]
	}
	return out
}
