package usecase

import "fmt"

func ErrFetchFailed(url string, err error) error {
	return fmt.Errorf("failed to fetch %s: %w", url, err)
}

func ErrTransferAborted(url string, err error) error {
	return fmt.Errorf("transfer of %s aborted: %w", url, err)
}

func ErrStoreFailed(dest string, err error) error {
	return fmt.Errorf("failed to store %s: %w", dest, err)
}
