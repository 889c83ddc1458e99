package codegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"sheetprep/internal/transform"
)

// LoadStep builds the initial data-loading step for an uploaded file.
func LoadStep(filename string, rows, cols int) (string, string) {
	read := "pd.read_excel"
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		read = "pd.read_csv"
	}
	code := fmt.Sprintf("df = %s(%s)\nprint(f'shape: {df.shape}')  # (%d, %d)", read, pyString(filename), rows, cols)
	return "Load data", code
}

// Snippet renders the pandas equivalent of an applied operation with its
// literal parameters.
func Snippet(op transform.Op, out *transform.Outcome) (string, string) {
	switch op.Kind {
	case transform.KindDropMissing:
		if len(op.Columns) == 0 {
			return "Handle missing values", fmt.Sprintf("df = df.dropna()\nprint(f'rows: %d -> %d')", out.RowsBefore, out.RowsAfter)
		}
		return "Handle missing values", fmt.Sprintf("df = df.dropna(subset=%s)\nprint(f'rows: %d -> %d')", pyList(op.Columns), out.RowsBefore, out.RowsAfter)

	case transform.KindFillMean:
		return "Handle missing values", fmt.Sprintf(
			"cols = %s\ndf[cols] = df[cols].fillna(df[cols].mean())", pyList(op.Columns))

	case transform.KindFillMedian:
		return "Handle missing values", fmt.Sprintf(
			"cols = %s\ndf[cols] = df[cols].fillna(df[cols].median())", pyList(op.Columns))

	case transform.KindFillConstant:
		if len(op.Columns) == 0 {
			return "Handle missing values", fmt.Sprintf("df = df.fillna(%s)", pyString(op.FillValue))
		}
		return "Handle missing values", fmt.Sprintf(
			"cols = %s\ndf[cols] = df[cols].fillna(%s)", pyList(op.Columns), pyString(op.FillValue))

	case transform.KindOutlierIQR:
		return "Remove outliers (IQR)", fmt.Sprintf(
			"cols = %s\n"+
				"q1 = df[cols].quantile(0.25)\n"+
				"q3 = df[cols].quantile(0.75)\n"+
				"iqr = q3 - q1\n"+
				"mask = ((df[cols] >= q1 - %g * iqr) & (df[cols] <= q3 + %g * iqr)).all(axis=1)\n"+
				"df = df[mask]",
			pyList(op.Columns), op.Fence, op.Fence)

	case transform.KindOutlierZScore:
		return "Remove outliers (z-score)", fmt.Sprintf(
			"cols = %s\n"+
				"z = np.abs(stats.zscore(df[cols], nan_policy='omit'))\n"+
				"df = df[(z < %g).all(axis=1)]",
			pyList(op.Columns), op.Threshold)

	case transform.KindDropDuplicates:
		if len(op.Columns) == 0 {
			return "Remove duplicates", fmt.Sprintf("df = df.drop_duplicates()\nprint(f'rows: %d -> %d')", out.RowsBefore, out.RowsAfter)
		}
		return "Remove duplicates", fmt.Sprintf("df = df.drop_duplicates(subset=%s)\nprint(f'rows: %d -> %d')", pyList(op.Columns), out.RowsBefore, out.RowsAfter)

	case transform.KindScaleZScore:
		return "Standardize (z-score)", fmt.Sprintf(
			"cols = %s\ndf[cols] = StandardScaler().fit_transform(df[cols])", pyList(op.Columns))

	case transform.KindScaleMinMax:
		return "Standardize (min-max)", fmt.Sprintf(
			"cols = %s\ndf[cols] = MinMaxScaler().fit_transform(df[cols])", pyList(op.Columns))

	case transform.KindCorrelation:
		return "Correlation analysis", fmt.Sprintf(
			"cols = %s\ncorr = df[cols].corr()\nprint(corr)", pyList(op.Columns))

	case transform.KindTTestOneSample:
		return "t-test", fmt.Sprintf(
			"data = df[%s].dropna()\n"+
				"t_stat, p_value = stats.ttest_1samp(data, %g)\n"+
				"print(f't = {t_stat:.4f}, p = {p_value:.4f}')",
			pyString(op.Column1), op.TestValue)

	case transform.KindTTestTwoSample:
		return "t-test", fmt.Sprintf(
			"data1 = df[%s].dropna()\n"+
				"data2 = df[%s].dropna()\n"+
				"t_stat, p_value = stats.ttest_ind(data1, data2)\n"+
				"print(f't = {t_stat:.4f}, p = {p_value:.4f}')",
			pyString(op.Column1), pyString(op.Column2))

	case transform.KindChiSquare:
		return "Chi-squared test", fmt.Sprintf(
			"table = pd.crosstab(df[%s], df[%s])\n"+
				"chi2, p_value, dof, expected = stats.chi2_contingency(table)\n"+
				"print(f'chi2 = {chi2:.4f}, p = {p_value:.4f}, dof = {dof}')",
			pyString(op.Column1), pyString(op.Column2))
	}
	return "Operation", "# unknown operation"
}
